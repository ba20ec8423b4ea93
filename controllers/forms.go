package controllers

import (
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/models"
)

// PostForm carries the submitted fields for creating or editing a post.
// Text is required; the group, when given, must reference an existing Group.
type PostForm struct {
	Text    string
	GroupID *uint
	Errors  map[string]string
}

// ParsePostForm validates the submitted post fields against the store.
func ParsePostForm(ctx *gin.Context, db *gorm.DB) *PostForm {
	form := &PostForm{
		Text:   strings.TrimSpace(ctx.PostForm("text")),
		Errors: map[string]string{},
	}
	if form.Text == "" {
		form.Errors["text"] = "Текст поста не может быть пустым"
	}
	if raw := strings.TrimSpace(ctx.PostForm("group")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			form.Errors["group"] = "Неизвестная группа"
		} else {
			var group models.Group
			if db.First(&group, id).Error != nil {
				form.Errors["group"] = "Неизвестная группа"
			} else {
				form.GroupID = &group.ID
			}
		}
	}
	return form
}

// Valid reports whether the submission passed validation.
func (f *PostForm) Valid() bool { return len(f.Errors) == 0 }

// CommentForm carries the submitted comment text.
type CommentForm struct {
	Text   string
	Errors map[string]string
}

// ParseCommentForm validates the submitted comment fields.
func ParseCommentForm(ctx *gin.Context) *CommentForm {
	form := &CommentForm{
		Text:   strings.TrimSpace(ctx.PostForm("text")),
		Errors: map[string]string{},
	}
	if form.Text == "" {
		form.Errors["text"] = "Текст комментария не может быть пустым"
	}
	return form
}

// Valid reports whether the submission passed validation.
func (f *CommentForm) Valid() bool { return len(f.Errors) == 0 }
