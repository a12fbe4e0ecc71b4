package main

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/samber/lo"

	"visitcoord/internal/coordinator"
	"visitcoord/internal/model"
)

const dateLayout = "2006-01-02"

type sessionCreateRequest struct {
	Facility struct {
		ExternalID   string `json:"externalId" validate:"required"`
		Name         string `json:"name" validate:"required"`
		ContactName  string `json:"contactName"`
		ContactEmail string `json:"contactEmail"`
		DocURL       string `json:"docUrl"`
	} `json:"facility"`
	Purpose          string `json:"purpose" validate:"required"`
	ResponseDeadline string `json:"responseDeadline" validate:"required"`
	PresentationDate string `json:"presentationDate" validate:"required"`
	DocURL           string `json:"docUrl"`
	Evaluators       []struct {
		Name  string `json:"name"`
		Email string `json:"email" validate:"required,email"`
	} `json:"evaluators"`
	Slots []struct {
		Date  string `json:"date" validate:"required"`
		Label string `json:"label" validate:"required"`
	} `json:"slots"`
}

func getSessionCreateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		req := new(sessionCreateRequest)

		if err := ctx.BodyParser(req); err != nil {
			return badRequest(ctx, err)
		}

		if err := validate.Struct(req); err != nil {
			return badRequest(ctx, err)
		}

		deadline, err := time.Parse(dateLayout, req.ResponseDeadline)
		if err != nil {
			return badRequest(ctx, err)
		}

		presentation, err := time.Parse(dateLayout, req.PresentationDate)
		if err != nil {
			return badRequest(ctx, err)
		}

		in := &coordinator.CreateSessionInput{
			Facility: coordinator.FacilityInput{
				ExternalID:   req.Facility.ExternalID,
				Name:         req.Facility.Name,
				ContactName:  req.Facility.ContactName,
				ContactEmail: req.Facility.ContactEmail,
				DocURL:       req.Facility.DocURL,
			},
			Purpose:          model.Purpose(req.Purpose),
			ResponseDeadline: deadline,
			PresentationDate: presentation,
			DocURL:           req.DocURL,
		}

		for _, e := range req.Evaluators {
			in.Evaluators = append(in.Evaluators, coordinator.EvaluatorInput{Name: e.Name, Email: e.Email})
		}

		for _, s := range req.Slots {
			d, err := time.Parse(dateLayout, s.Date)
			if err != nil {
				return badRequest(ctx, err)
			}

			in.Slots = append(in.Slots, coordinator.SlotInput{Date: d, Label: s.Label})
		}

		session, err := app.admin.CreateSession(in)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.Status(fiber.StatusCreated).JSON(fiber.Map{"id": session.ID})
	}
}

func getSessionListHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		q := app.dbm.SessionQuery().Full()

		if s := ctx.Query("status"); s != "" {
			q = q.Status(model.Status(s))
		}

		if p := ctx.Query("purpose"); p != "" {
			q = q.Purpose(model.Purpose(p))
		}

		sessions := q.Get()

		return ctx.JSON(lo.Map(sessions, func(s *model.Session, _ int) *model.SessionDTO {
			return model.ToSessionDTO(s)
		}))
	}
}

func getSessionStatusHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		s := app.dbm.SessionQuery().Id(id).One()
		if s == nil {
			return apiError(ctx, coordinator.ErrNotFound)
		}

		return ctx.JSON(fiber.Map{"id": s.ID, "status": s.Status})
	}
}

type sessionUpdateRequest struct {
	Purpose          *string `json:"purpose"`
	ResponseDeadline *string `json:"responseDeadline"`
	PresentationDate *string `json:"presentationDate"`
	DocURL           *string `json:"docUrl"`
}

func getSessionUpdateHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		req := new(sessionUpdateRequest)

		if err := ctx.BodyParser(req); err != nil {
			return badRequest(ctx, err)
		}

		in := &coordinator.UpdateSessionInput{DocURL: req.DocURL}

		if req.Purpose != nil {
			p := model.Purpose(*req.Purpose)
			in.Purpose = &p
		}

		if req.ResponseDeadline != nil {
			d, err := time.Parse(dateLayout, *req.ResponseDeadline)
			if err != nil {
				return badRequest(ctx, err)
			}

			in.ResponseDeadline = &d
		}

		if req.PresentationDate != nil {
			d, err := time.Parse(dateLayout, *req.PresentationDate)
			if err != nil {
				return badRequest(ctx, err)
			}

			in.PresentationDate = &d
		}

		if err := app.admin.UpdateSession(id, in); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

// getSessionNotifiedHandler is the external trigger asserting that
// evaluator notification went out: Drafting moves to WaitingForEvaluators.
func getSessionNotifiedHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		if err := app.lifecycle.Advance(id, model.StatusWaitingForEvaluators); err != nil {
			return apiError(ctx, err)
		}

		return ctx.SendStatus(fiber.StatusNoContent)
	}
}

func getSessionSummaryHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		summary, err := app.aggregator.Summary(id)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(summary)
	}
}

func getEveryoneOkHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		slotID, err := pathID(ctx, "slotId")
		if err != nil {
			return badRequest(ctx, err)
		}

		ok, err := app.aggregator.EveryoneOK(id, slotID)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(fiber.Map{"slotId": slotID, "everyoneOk": ok})
	}
}

type adminAnswersRequest struct {
	Note    *string          `json:"note"`
	Answers map[uint]*string `json:"answers"`
}

func getAdminAnswersHandler(app *App) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		id, err := pathID(ctx, "id")
		if err != nil {
			return badRequest(ctx, err)
		}

		eid, err := pathID(ctx, "eid")
		if err != nil {
			return badRequest(ctx, err)
		}

		req := new(adminAnswersRequest)

		if err := ctx.BodyParser(req); err != nil {
			return badRequest(ctx, err)
		}

		res, err := app.evaluators.AdminSetAnswers(id, eid, req.Note, req.Answers)
		if err != nil {
			return apiError(ctx, err)
		}

		return ctx.JSON(fiber.Map{
			"sessionId":   res.SessionID,
			"evaluatorId": res.EvaluatorID,
			"upserted":    res.Upserted,
			"deleted":     res.Deleted,
		})
	}
}

func getEnumsHandler() fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		return ctx.JSON(fiber.Map{
			"purpose": model.AllPurposes(),
			"status":  model.AllStatuses(),
		})
	}
}

func pathID(ctx *fiber.Ctx, name string) (uint, error) {
	n, err := strconv.ParseUint(ctx.Params(name), 10, 32)
	if err != nil {
		return 0, err
	}

	return uint(n), nil
}
