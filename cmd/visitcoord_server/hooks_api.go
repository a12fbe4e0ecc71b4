package main

import (
	"github.com/gofiber/fiber/v2"
)

type evaluatorResponseRequest struct {
	Token   string          `json:"token" validate:"required"`
	Answers map[uint]string `json:"answers"`
	Note    *string         `json:"note"`
}

func getEvaluatorResponseHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(evaluatorResponseRequest)

		if err := ctx.BodyParser(req); err != nil {
			return badRequest(ctx, err)
		}

		if err := validate.Struct(req); err != nil {
			return badRequest(ctx, err)
		}

		res, err := app.evaluators.Submit(req.Token, req.Answers, req.Note)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(fiber.Map{
			"sessionId":          res.SessionID,
			"evaluatorId":        res.EvaluatorID,
			"sessionEvaluatorId": res.SessionEvaluatorID,
			"answeredAt":         res.AnsweredAt,
			"recorded":           res.Recorded,
			"dropped":            res.Dropped,
			"transitioned":       res.Transition.Advanced,
		})
	}
}

type clientResponseRequest struct {
	SessionID               uint   `json:"sessionId" validate:"required"`
	SelectedCandidateSlotID *uint  `json:"selectedCandidateSlotId"`
	Note                    string `json:"note"`
}

func getClientResponseHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(clientResponseRequest)

		if err := ctx.BodyParser(req); err != nil {
			return badRequest(ctx, err)
		}

		if err := validate.Struct(req); err != nil {
			return badRequest(ctx, err)
		}

		res, err := app.client.Submit(req.SessionID, req.SelectedCandidateSlotID, req.Note)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(fiber.Map{
			"sessionId":    res.SessionID,
			"responseId":   res.ResponseID,
			"answeredAt":   res.AnsweredAt,
			"transitioned": res.Transition.Advanced,
			"payload":      res.Payload,
		})
	}
}
