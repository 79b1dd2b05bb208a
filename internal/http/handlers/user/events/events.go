package events

import (
	"errors"
	"net/http"
	e "postboard/internal/core/domain/errors"
	"postboard/internal/core/domain/logging"
	"postboard/internal/core/domain/user"
	"postboard/internal/core/services"
	s "postboard/internal/core/services/get_user_by_session_token"
	"postboard/internal/http/handlers/auth"
	"postboard/internal/http/handlers/response"
	eventpublisher "postboard/internal/implementations/event_publisher"

	"github.com/r3labs/sse/v2"
)

type Handler struct {
	log       logging.Logger
	service   services.Service[s.Input, s.Result]
	sseServer *sse.Server
}

func New(
	log logging.Logger,
	sseServer *sse.Server,
	service services.Service[s.Input, s.Result],
) *Handler {
	if log == nil {
		panic(e.NewNilArgumentError("log"))
	}
	if sseServer == nil {
		panic(e.NewNilArgumentError("sseServer"))
	}
	if service == nil {
		panic(e.NewNilArgumentError("service"))
	}
	return &Handler{log: log, sseServer: sseServer, service: service}
}

// ServeHTTP streams the account events of the authenticated user. EventSource
// cannot send headers, so the session token may come as a query parameter.
func (h *Handler) ServeHTTP(rw http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Has(auth.AUTH_TOKEN_QUERY_PARAM) {
		token, ok := auth.ParseQueryToken(r)
		if !ok {
			response.RenderUnauthorized(rw)
			return
		}
		r = r.WithContext(auth.WithToken(r.Context(), token))
	}

	result, err := h.service.Run(r.Context(), s.Input{})
	if errors.Is(err, user.ErrInvalidSessionToken) {
		response.RenderUnauthorized(rw)
		return
	}
	if err != nil {
		response.RenderInternalError(rw)
		return
	}

	streamID := r.URL.Query().Get("stream")
	if streamID != eventpublisher.StreamID(result.User.ID) {
		response.RenderError(rw, "invalid stream", http.StatusBadRequest)
		return
	}
	if !h.sseServer.StreamExists(streamID) {
		h.sseServer.CreateStream(streamID)
	}

	h.log.Info(
		r.Context(),
		"Subscribed to user events.",
		logging.Entry("userID", result.User.ID),
		logging.Entry("streamID", streamID),
	)
	h.sseServer.ServeHTTP(rw, r)
	h.log.Info(r.Context(), "Unsubscribed from user events.", logging.Entry("userID", result.User.ID))
}
