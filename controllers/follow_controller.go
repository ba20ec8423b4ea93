package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// FollowController manages subscription edges and the aggregated feed.
type FollowController struct {
	db *gorm.DB
}

// NewFollowController creates a new FollowController instance.
func NewFollowController(db *gorm.DB) *FollowController {
	return &FollowController{db: db}
}

// FollowIndex lists posts authored by everyone the viewer follows, newest
// first, paginated.
func (f *FollowController) FollowIndex(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, "/")
		return
	}

	followed := f.db.Model(&models.Follow{}).
		Select("author_id").
		Where("user_id = ?", uid)
	query := f.db.Preload("Author").Preload("Group").
		Where("author_id IN (?)", followed).
		Order("created_at DESC, id DESC")

	page, err := utils.Paginate[models.Post](query, ctx.Query("page"), config.Get().PageSize)
	if err != nil {
		serverError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "follow.html", gin.H{"Page": page})
}

// ProfileFollow subscribes the viewer to the author, idempotently. Following
// yourself is skipped; either way the viewer lands back on the profile.
func (f *FollowController) ProfileFollow(ctx *gin.Context) {
	author, ok := f.loadAuthor(ctx)
	if !ok {
		return
	}
	uid, _ := currentUserID(ctx)

	if uid != author.ID {
		follow := models.Follow{UserID: uid, AuthorID: author.ID}
		err := f.db.Where(&models.Follow{UserID: uid, AuthorID: author.ID}).
			FirstOrCreate(&follow).Error
		if err != nil && !errors.Is(err, models.ErrSelfFollow) {
			serverError(ctx, err)
			return
		}
	}

	ctx.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

// ProfileUnfollow removes the subscription edge if it exists.
func (f *FollowController) ProfileUnfollow(ctx *gin.Context) {
	author, ok := f.loadAuthor(ctx)
	if !ok {
		return
	}
	uid, _ := currentUserID(ctx)

	if err := f.db.Where("user_id = ? AND author_id = ?", uid, author.ID).
		Delete(&models.Follow{}).Error; err != nil {
		serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/profile/"+author.Username+"/")
}

func (f *FollowController) loadAuthor(ctx *gin.Context) (models.User, bool) {
	var author models.User
	err := f.db.Where("username = ?", ctx.Param("username")).First(&author).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundPage(ctx)
		} else {
			serverError(ctx, err)
		}
		return models.User{}, false
	}
	return author, true
}
