package controller

import (
	"encoding/json"

	"ragchat-be/internal/dto"
	"ragchat-be/internal/pkg/serverutils"
	"ragchat-be/internal/service"

	"github.com/gofiber/fiber/v2"
)

type IDocumentController interface {
	RegisterRoutes(r fiber.Router)
	Index(ctx *fiber.Ctx) error
	BatchIndex(ctx *fiber.Ctx) error
	Retrieve(ctx *fiber.Ctx) error
}

type documentController struct {
	retrievalService service.IRetrievalService
	publisherService service.IPublisherService
}

func NewDocumentController(
	retrievalService service.IRetrievalService,
	publisherService service.IPublisherService,
) IDocumentController {
	return &documentController{
		retrievalService: retrievalService,
		publisherService: publisherService,
	}
}

func (c *documentController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/document/v1")
	h.Use(serverutils.JwtMiddleware)
	h.Post("/index", c.Index)
	h.Post("/index/batch", c.BatchIndex)
	h.Post("/retrieve", c.Retrieve)
}

func (c *documentController) Index(ctx *fiber.Ctx) error {
	var req dto.IndexDocumentRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	doc, err := c.retrievalService.Index(ctx.Context(), service.IndexInput{
		Text:   req.Text,
		Source: req.Source,
		Title:  req.Title,
		Author: req.Author,
		Year:   req.Year,
	})
	if err != nil {
		return err
	}

	res := &dto.IndexDocumentResponse{
		Id:        doc.Id,
		Text:      doc.Text,
		Embedding: doc.Embedding,
		CreatedAt: doc.CreatedAt,
	}
	return ctx.JSON(serverutils.SuccessResponse("Success index document", res))
}

// BatchIndex accepts the documents and hands them to the async pipeline. The
// 202 status tells the client to watch websocket progress events instead of
// waiting on the response.
func (c *documentController) BatchIndex(ctx *fiber.Ctx) error {
	var req dto.BatchIndexRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	for _, d := range req.Documents {
		payload, err := json.Marshal(dto.PublishIndexDocumentMessage{
			Text:   d.Text,
			Source: d.Source,
			Title:  d.Title,
			Author: d.Author,
			Year:   d.Year,
		})
		if err != nil {
			return err
		}
		if err := c.publisherService.Publish(ctx.Context(), payload); err != nil {
			return err
		}
	}

	res := &dto.BatchIndexResponse{Accepted: len(req.Documents)}
	return ctx.Status(fiber.StatusAccepted).JSON(serverutils.SuccessResponse("Documents accepted for indexing", res))
}

func (c *documentController) Retrieve(ctx *fiber.Ctx) error {
	var req dto.RetrieveRequest
	if err := ctx.BodyParser(&req); err != nil {
		return err
	}

	if err := serverutils.ValidateRequest(req); err != nil {
		return err
	}

	k := req.TopK
	if k == 0 {
		k = c.retrievalService.DefaultTopK()
	}

	results, err := c.retrievalService.Retrieve(ctx.Context(), req.Text, k)
	if err != nil {
		return err
	}

	res := &dto.RetrieveResponse{Query: req.Text, Results: make([]dto.RetrieveResult, len(results))}
	for i, r := range results {
		res.Results[i] = dto.RetrieveResult{
			Id:    r.Document.Id,
			Score: r.Score,
			Text:  r.Document.Text,
		}
	}
	return ctx.JSON(serverutils.SuccessResponse("Success retrieve documents", res))
}
