package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v3"
	"github.com/google/uuid"

	"github.com/polijecare/polijecare_web/pkg/apiclient"
	"github.com/polijecare/polijecare_web/pkg/reqctx"
)

type listQuery struct {
	Page    int    `query:"page"`
	PerPage int    `query:"per_page"`
	Search  string `query:"search"`
	Status  string `query:"status"`
}

func listParams(c fiber.Ctx) (apiclient.ListParams, error) {
	var q listQuery
	if err := c.Bind().Query(&q); err != nil {
		return apiclient.ListParams{}, err
	}
	return apiclient.ListParams{Page: q.Page, PerPage: q.PerPage, Search: q.Search, Status: q.Status}.Normalize(), nil
}

// idParam reads a positive numeric route parameter.
func idParam(c fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// sessionID is the BFF session of the authenticated caller.
func sessionID(c fiber.Ctx) (uuid.UUID, bool) {
	id, ok := reqctx.IdentityFromContext(c.Context())
	if !ok || id.SessionID == uuid.Nil {
		return uuid.Nil, false
	}
	return id.SessionID, true
}
