package web

import (
	"context"
	"encoding/json"
	"errors"
	"image/color"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/starfederation/datastar-go/datastar"

	"github.com/biopass/biopass/pkg/broadcast"
	"github.com/biopass/biopass/pkg/lifecycle"
	"github.com/biopass/biopass/pkg/logger"
	"github.com/biopass/biopass/pkg/qrcode"
)

// Controller is the part of *lifecycle.Controller the handlers use.
type Controller interface {
	State() lifecycle.State
	Fingerprint() string
	Generate(ctx context.Context) (lifecycle.State, error)
	Regenerate(ctx context.Context) (lifecycle.State, error)
	Destroy(ctx context.Context) lifecycle.State
	Subscribe(ctx context.Context) broadcast.Subscriber[lifecycle.State]
}

type handlers struct {
	ctrl   Controller
	log    *slog.Logger
	checks []func(context.Context) error
}

const (
	minQRSize = 64
	maxQRSize = 1024
)

func (h *handlers) view(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.ctrl.State().View())
}

func (h *handlers) generate(w http.ResponseWriter, r *http.Request) {
	st, err := h.ctrl.Generate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, st)
}

func (h *handlers) regenerate(w http.ResponseWriter, r *http.Request) {
	st, err := h.ctrl.Regenerate(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.respond(w, r, http.StatusCreated, st)
}

func (h *handlers) destroy(w http.ResponseWriter, r *http.Request) {
	h.respond(w, r, http.StatusOK, h.ctrl.Destroy(r.Context()))
}

func (h *handlers) qr(w http.ResponseWriter, r *http.Request) {
	st := h.ctrl.State()
	if !st.Status.Active() {
		writeError(w, http.StatusNotFound, "no live pass")
		return
	}

	size := qrcode.DefaultSize
	if v := r.URL.Query().Get("size"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "size must be an integer")
			return
		}
		size = min(max(n, minQRSize), maxQRSize)
	}

	img, err := qrcode.PNG(st.Token, qrcode.WithSize(size), qrcode.WithForeground(qrColor(st.Status)))
	if err != nil {
		h.log.ErrorContext(r.Context(), "qr render failed", logger.Error(err))
		writeError(w, http.StatusInternalServerError, "qr render failed")
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(img)
}

// events streams signal patches until the client leaves or the controller
// closes. The QR data URI is re-sent only when the token or status changes.
func (h *handlers) events(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	sse := datastar.NewSSE(w, r)

	sub := h.ctrl.Subscribe(ctx)
	defer sub.Close()

	var lastToken string
	var lastStatus lifecycle.Status
	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-sub.Receive(ctx):
			if !ok {
				return
			}
			st := msg.Data
			withQR := st.Token != lastToken || st.Status != lastStatus
			lastToken, lastStatus = st.Token, st.Status

			if err := h.patch(sse, st, withQR); err != nil {
				h.log.DebugContext(ctx, "event stream closed", logger.Error(err))
				return
			}
		}
	}
}

func (h *handlers) healthz(w http.ResponseWriter, r *http.Request) {
	for _, check := range h.checks {
		if err := check(r.Context()); err != nil {
			h.log.ErrorContext(r.Context(), "readiness check failed", logger.Error(err))
			writeError(w, http.StatusServiceUnavailable, "not ready")
			return
		}
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *handlers) respond(w http.ResponseWriter, r *http.Request, code int, st lifecycle.State) {
	if isDataStar(r) {
		sse := datastar.NewSSE(w, r)
		if err := h.patch(sse, st, true); err != nil {
			h.log.DebugContext(r.Context(), "signal patch failed", logger.Error(err))
		}
		return
	}
	writeJSON(w, code, st.View())
}

func (h *handlers) fail(w http.ResponseWriter, r *http.Request, err error) {
	code, msg := errorStatus(err)
	if code >= http.StatusInternalServerError {
		h.log.ErrorContext(r.Context(), "pass request failed", logger.Error(err))
	}
	if isDataStar(r) {
		sse := datastar.NewSSE(w, r)
		_ = patchJSON(sse, map[string]any{"error": msg})
		return
	}
	writeError(w, code, msg)
}

func (h *handlers) patch(sse *datastar.ServerSentEventGenerator, st lifecycle.State, withQR bool) error {
	v := st.View()
	signals := map[string]any{
		"status":      v.Status,
		"timeLeft":    v.TimeLeft,
		"clock":       v.Clock(),
		"session":     v.SessionPrefix,
		"fingerprint": h.ctrl.Fingerprint(),
		"error":       "",
	}
	if withQR {
		signals["qr"] = ""
		if st.Status.Active() {
			uri, err := qrcode.DataURI(st.Token, qrcode.WithForeground(qrColor(st.Status)), qrcode.WithBackground(color.Transparent))
			if err != nil {
				return err
			}
			signals["qr"] = uri
		}
	}
	return patchJSON(sse, signals)
}

func patchJSON(sse *datastar.ServerSentEventGenerator, signals map[string]any) error {
	data, err := json.Marshal(signals)
	if err != nil {
		return err
	}
	return sse.PatchSignals(data)
}

func qrColor(s lifecycle.Status) color.Color {
	if s == lifecycle.StatusExpiring {
		return qrcode.ExpiringColor
	}
	return qrcode.ValidColor
}

func errorStatus(err error) (int, string) {
	switch {
	case errors.Is(err, lifecycle.ErrSessionActive):
		return http.StatusConflict, "a pass is already active"
	case errors.Is(err, lifecycle.ErrGenerateInFlight):
		return http.StatusConflict, "a pass is being generated"
	case errors.Is(err, lifecycle.ErrSessionDestroyed):
		return http.StatusConflict, "the pass was destroyed while generating"
	case errors.Is(err, lifecycle.ErrClosed):
		return http.StatusServiceUnavailable, "shutting down"
	default:
		return http.StatusInternalServerError, "could not generate a pass"
	}
}

// isDataStar reports whether r was sent by the Datastar client.
func isDataStar(r *http.Request) bool {
	return r.Header.Get("Datastar-Request") == "true" ||
		strings.Contains(r.Header.Get("Accept"), "text/event-stream")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, msg string) {
	writeJSON(w, code, map[string]string{"error": msg})
}
