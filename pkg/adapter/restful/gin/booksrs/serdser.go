package booksrs

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/momeni/bookshelf/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/bookshelf/pkg/core/log"
	"github.com/momeni/bookshelf/pkg/core/model"
)

type bookIDUri struct {
	ID int64 `uri:"id" binding:"required,min=1"`
}

type rawBookReq struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear *int   `json:"publicationYear"`
	Available       *bool  `json:"available"`
}

type rawBookPatchReq struct {
	Title           *string `json:"title"`
	Author          *string `json:"author"`
	ISBN            *string `json:"isbn"`
	PublicationYear *int    `json:"publicationYear"`
	Available       *bool   `json:"available"`
}

func (rs *resource) DserBookIDReq(c *gin.Context) (int64, bool) {
	uri := &bookIDUri{}
	if ok := serdser.BindURI(c, uri); !ok {
		return 0, false
	}
	return uri.ID, true
}

func (rs *resource) DserBookDraftReq(c *gin.Context) *model.BookDraft {
	req := &rawBookReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	return &model.BookDraft{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
		Available:       req.Available,
	}
}

func (rs *resource) DserBookPatchReq(c *gin.Context) *model.BookPatch {
	req := &rawBookPatchReq{}
	if ok := serdser.Bind(c, req, binding.JSON); !ok {
		return nil
	}
	if req.Available != nil {
		// The availability flag may be replaced by PUT alone.
		log.Warn(
			c.Request.Context(),
			"ignoring the available field of a partial update",
			slog.String("path", c.Request.URL.Path),
		)
	}
	return &model.BookPatch{
		Title:           req.Title,
		Author:          req.Author,
		ISBN:            req.ISBN,
		PublicationYear: req.PublicationYear,
	}
}
