package server

import (
	"github.com/gofiber/fiber/v2"

	"github.com/argus-labs/godesc/pkg/descriptor"
	"github.com/argus-labs/godesc/pkg/validate"
)

const defaultName = "request.go"

type GetHealthResponse struct {
	IsServerRunning bool   `json:"isServerRunning"`
	Fingerprint     string `json:"fingerprint"`
}

// GetHealth reports that the server is running and the fingerprint of the checks it runs.
func GetHealth(v *validate.Validator) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		return c.JSON(GetHealthResponse{IsServerRunning: true, Fingerprint: v.Fingerprint()})
	}
}

// GetSchema returns the JSON schema of the /parse output.
func GetSchema() func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		schema, err := descriptor.Schema()
		if err != nil {
			return err
		}
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(schema)
	}
}

// PostParse decodes the descriptor in the body into its JSON form. The name query parameter is
// used in error positions.
func PostParse() func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		g, err := parseBody(c)
		if err != nil {
			return err
		}
		return c.JSON(g)
	}
}

// PostValidate validates the descriptor in the body. Descriptors that do not parse yield a report
// with a parse issue rather than an error response.
func PostValidate(v *validate.Validator) func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		body, err := requireBody(c)
		if err != nil {
			return err
		}
		report := v.Validate(c.UserContext(), c.Query("name", defaultName), body)
		return c.JSON(report)
	}
}

// PostFormat rewrites the descriptor in the body in canonical layout, leaving out default
// transforms when omit_defaults is set.
func PostFormat() func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		g, err := parseBody(c)
		if err != nil {
			return err
		}
		var opts []descriptor.EncodeOption
		if c.QueryBool("omit_defaults") {
			opts = append(opts, descriptor.WithOmitDefaults())
		}
		c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
		return c.Send(descriptor.Marshal(g, opts...))
	}
}

// PostReferences lists the resources the descriptor in the body references.
func PostReferences() func(*fiber.Ctx) error {
	return func(c *fiber.Ctx) error {
		g, err := parseBody(c)
		if err != nil {
			return err
		}
		refs := g.References()
		if refs == nil {
			refs = []descriptor.Reference{}
		}
		return c.JSON(refs)
	}
}

func requireBody(c *fiber.Ctx) ([]byte, error) {
	body := c.Body()
	if len(body) == 0 {
		return nil, fiber.NewError(fiber.StatusBadRequest, "request body was empty")
	}
	return body, nil
}

func parseBody(c *fiber.Ctx) (*descriptor.GameObject, error) {
	body, err := requireBody(c)
	if err != nil {
		return nil, err
	}
	g, err := descriptor.ParseBytes(c.Query("name", defaultName), body)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return g, nil
}
