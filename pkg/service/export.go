package service

import (
	"github.com/gofiber/fiber/v3"

	"github.com/dataspine/mcda-go/pkg/datastore"
	"github.com/dataspine/mcda-go/pkg/errors"
	"github.com/dataspine/mcda-go/pkg/pipeline"
)

// ExportServer is a small read-only HTTP facade over the resource store,
// for pulling results out of a running analyzer without an MCP client.
type ExportServer struct {
	app      *fiber.App
	pipeline *pipeline.Pipeline
}

func NewExportServer(p *pipeline.Pipeline) *ExportServer {
	return &ExportServer{
		app: fiber.New(fiber.Config{
			AppName:      "MCDA Export",
			ServerHeader: "MCDA-Export-Server",
		}),
		pipeline: p,
	}
}

func (srv *ExportServer) Run(addr string) error {
	srv.app.Get("/health", func(ctx fiber.Ctx) error {
		return ctx.SendString("OK")
	})

	srv.app.Get("/resources", func(ctx fiber.Ctx) error {
		typ := datastore.ResourceType(ctx.Query("type"))
		resources := srv.pipeline.Store().List(typ)

		out := make([]fiber.Map, 0, len(resources))
		for _, resource := range resources {
			out = append(out, fiber.Map{
				"id":        resource.ID,
				"uri":       resource.URI(),
				"type":      resource.Type,
				"step":      resource.Step,
				"parent_id": resource.ParentID,
				"operation": resource.Metadata.Operation,
			})
		}
		return ctx.Status(fiber.StatusOK).JSON(out)
	})

	srv.app.Get("/resources/:id", func(ctx fiber.Ctx) error {
		resource, err := srv.pipeline.Store().Get(ctx.Params("id"))
		if err != nil {
			return statusFor(ctx, err)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"id":        resource.ID,
			"type":      resource.Type,
			"step":      resource.Step,
			"parent_id": resource.ParentID,
			"metadata":  resource.Metadata,
			"payload":   resource.Payload,
		})
	})

	srv.app.Get("/resources/:id/chain", func(ctx fiber.Ctx) error {
		chain, err := srv.pipeline.Store().DependencyChain(ctx.Params("id"))
		if err != nil {
			return statusFor(ctx, err)
		}

		ids := make([]string, 0, len(chain.Resources))
		for _, resource := range chain.Resources {
			ids = append(ids, resource.ID)
		}
		return ctx.Status(fiber.StatusOK).JSON(fiber.Map{
			"chain":     ids,
			"truncated": chain.Truncated,
		})
	})

	srv.app.Get("/resources/:id/csv", func(ctx fiber.Ctx) error {
		csvText, err := srv.pipeline.ExportCSV(ctx.Params("id"))
		if err != nil {
			return statusFor(ctx, err)
		}
		ctx.Set(fiber.HeaderContentType, "text/csv")
		return ctx.Status(fiber.StatusOK).SendString(csvText)
	})

	return srv.app.Listen(addr)
}

func statusFor(ctx fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.IsKind(err, errors.KindNotFound):
		status = fiber.StatusNotFound
	case errors.IsKind(err, errors.KindMalformedID):
		status = fiber.StatusBadRequest
	}
	return ctx.Status(status).JSON(fiber.Map{"error": err.Error()})
}
