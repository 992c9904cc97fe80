package routes

import (
	"log/slog"
	"net/http"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/bluntdao/blunt_frame/internal/farcaster"
	"github.com/bluntdao/blunt_frame/internal/frame"
	"github.com/bluntdao/blunt_frame/internal/identity"
	"github.com/bluntdao/blunt_frame/internal/middleware"
	"github.com/bluntdao/blunt_frame/internal/render"
)

// FrameHandler serves the frame endpoint.
type FrameHandler struct {
	service  *frame.Service
	auth     farcaster.Authenticator
	renderer *render.Renderer
	logger   *slog.Logger
}

// NewFrameHandler constructs the frame HTTP handler.
func NewFrameHandler(service *frame.Service, auth farcaster.Authenticator, renderer *render.Renderer, logger *slog.Logger) *FrameHandler {
	return &FrameHandler{service: service, auth: auth, renderer: renderer, logger: logger}
}

// RegisterFrameRoutes wires GET (initial view) and POST (interaction) on /frames.
func RegisterFrameRoutes(r fiber.Router, h *FrameHandler) {
	r.Get("/frames", h.Initial)
	r.Post("/frames", h.Interact)
}

// Initial always answers with the entry card.
func (h *FrameHandler) Initial(c *fiber.Ctx) error {
	return h.respond(c, h.service.Handle(c.UserContext(), frame.Request{}))
}

// Interact authenticates the posted packet and answers with the next card.
func (h *FrameHandler) Interact(c *fiber.Ctx) error {
	req := frame.Request{PageQuery: pageQuery(c)}
	req.Message = h.message(c)
	return h.respond(c, h.service.Handle(c.UserContext(), req))
}

func (h *FrameHandler) message(c *fiber.Ctx) *frame.Message {
	if middleware.Throttled(c) {
		return nil
	}
	packet, err := farcaster.ParsePacket(c.Body())
	if err != nil {
		return nil
	}
	msg, err := h.auth.Authenticate(c.UserContext(), packet)
	if err != nil {
		h.logger.Warn("frame message rejected",
			slog.String("request_id", middleware.GetRequestID(c)),
			slog.Uint64("untrusted_fid", packet.UntrustedData.FID),
			slog.Any("error", err),
		)
		return nil
	}
	return &frame.Message{RequesterFID: identity.FID(msg.RequesterFID)}
}

func (h *FrameHandler) respond(c *fiber.Ctx, resp frame.Response) error {
	if wantsJSON(c.Get(fiber.HeaderAccept)) {
		return c.Status(http.StatusOK).JSON(h.renderer.Card(resp))
	}
	doc, err := h.renderer.HTML(resp)
	if err != nil {
		return fiber.NewError(http.StatusInternalServerError, err.Error())
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Status(http.StatusOK).Send(doc)
}

func pageQuery(c *fiber.Ctx) *string {
	args := c.Context().QueryArgs()
	if !args.Has(frame.PageQueryParam) {
		return nil
	}
	v := string(args.Peek(frame.PageQueryParam))
	return &v
}

func wantsJSON(accept string) bool {
	accept = strings.ToLower(accept)
	return strings.Contains(accept, "application/frame+json") || strings.Contains(accept, fiber.MIMEApplicationJSON)
}
