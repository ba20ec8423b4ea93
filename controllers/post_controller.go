package controllers

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/yatube/yatube/config"
	"github.com/yatube/yatube/middleware"
	"github.com/yatube/yatube/models"
	"github.com/yatube/yatube/utils"
)

// PostController serves the public listing pages and the authenticated
// post/comment flows.
type PostController struct {
	db *gorm.DB
}

// NewPostController creates a new PostController instance.
func NewPostController(db *gorm.DB) *PostController {
	return &PostController{db: db}
}

// postQuery is the shared listing query: author and group preloaded,
// newest first.
func (p *PostController) postQuery() *gorm.DB {
	return p.db.Preload("Author").Preload("Group").Order("created_at DESC, id DESC")
}

// Index lists all posts, newest first, paginated. The rendered response is
// cached by the page-cache middleware mounted on this route.
func (p *PostController) Index(ctx *gin.Context) {
	page, err := utils.Paginate[models.Post](p.postQuery(), ctx.Query("page"), config.Get().PageSize)
	if err != nil {
		serverError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "index.html", gin.H{"Page": page})
}

// GroupPosts lists posts of one group; unknown slugs get the 404 page.
func (p *PostController) GroupPosts(ctx *gin.Context) {
	var group models.Group
	if err := p.db.Where("slug = ?", ctx.Param("slug")).First(&group).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundPage(ctx)
			return
		}
		serverError(ctx, err)
		return
	}

	query := p.postQuery().Where("group_id = ?", group.ID)
	page, err := utils.Paginate[models.Post](query, ctx.Query("page"), config.Get().PageSize)
	if err != nil {
		serverError(ctx, err)
		return
	}
	render(ctx, http.StatusOK, "group_list.html", gin.H{"Group": group, "Page": page})
}

// Profile lists one author's posts and tells the viewer whether they follow
// this author.
func (p *PostController) Profile(ctx *gin.Context) {
	var author models.User
	if err := p.db.Where("username = ?", ctx.Param("username")).First(&author).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundPage(ctx)
			return
		}
		serverError(ctx, err)
		return
	}

	query := p.postQuery().Where("author_id = ?", author.ID)
	page, err := utils.Paginate[models.Post](query, ctx.Query("page"), config.Get().PageSize)
	if err != nil {
		serverError(ctx, err)
		return
	}

	following := false
	if uid, ok := currentUserID(ctx); ok && uid != author.ID {
		var count int64
		if err := p.db.Model(&models.Follow{}).
			Where("user_id = ? AND author_id = ?", uid, author.ID).
			Count(&count).Error; err != nil {
			serverError(ctx, err)
			return
		}
		following = count > 0
	}

	render(ctx, http.StatusOK, "profile.html", gin.H{
		"Author":    author,
		"Following": following,
		"Page":      page,
	})
}

// PostDetail shows one post, its comments in creation order and an empty
// comment form.
func (p *PostController) PostDetail(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}

	var comments []models.Comment
	if err := p.db.Preload("Author").
		Where("post_id = ?", post.ID).
		Order("created_at ASC, id ASC").
		Find(&comments).Error; err != nil {
		serverError(ctx, err)
		return
	}

	render(ctx, http.StatusOK, "post_detail.html", gin.H{
		"Post":      post,
		"Comments":  comments,
		"CSRFToken": csrfToken(ctx),
	})
}

// PostCreatePage shows the empty post form.
func (p *PostController) PostCreatePage(ctx *gin.Context) {
	p.renderPostForm(ctx, &PostForm{Errors: map[string]string{}}, nil)
}

// PostCreate persists a valid submission as a post owned by the viewer and
// redirects to the viewer's profile. Invalid submissions re-render the form
// with field errors and change nothing.
func (p *PostController) PostCreate(ctx *gin.Context) {
	uid, ok := currentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	form := ParsePostForm(ctx, p.db)
	imagePath, err := p.saveImage(ctx)
	if err != nil {
		form.Errors["image"] = "Не удалось сохранить картинку"
	}
	if !form.Valid() {
		p.renderPostForm(ctx, form, nil)
		return
	}

	post := models.Post{
		AuthorID: uid,
		GroupID:  form.GroupID,
		Text:     utils.Sanitize(form.Text),
		Image:    imagePath,
	}
	if err := p.db.Create(&post).Error; err != nil {
		serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, "/profile/"+currentUsername(ctx)+"/")
}

// PostEditPage shows the form bound to the existing post. Non-authors are
// silently redirected to the detail page.
func (p *PostController) PostEditPage(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	if uid, _ := currentUserID(ctx); uid != post.AuthorID {
		ctx.Redirect(http.StatusFound, detailPath(post.ID))
		return
	}

	form := &PostForm{Text: post.Text, GroupID: post.GroupID, Errors: map[string]string{}}
	p.renderPostForm(ctx, form, &post)
}

// PostEdit updates the post when the viewer is its author. Anyone else is
// redirected to the detail page without modification.
func (p *PostController) PostEdit(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	uid, _ := currentUserID(ctx)
	if uid != post.AuthorID {
		ctx.Redirect(http.StatusFound, detailPath(post.ID))
		return
	}

	form := ParsePostForm(ctx, p.db)
	imagePath, err := p.saveImage(ctx)
	if err != nil {
		form.Errors["image"] = "Не удалось сохранить картинку"
	}
	if !form.Valid() {
		p.renderPostForm(ctx, form, &post)
		return
	}

	post.Text = utils.Sanitize(form.Text)
	post.GroupID = form.GroupID
	if imagePath != "" {
		post.Image = imagePath
	}
	if err := p.db.Save(&post).Error; err != nil {
		serverError(ctx, err)
		return
	}

	ctx.Redirect(http.StatusFound, detailPath(post.ID))
}

// AddComment attaches a comment to the post and returns to the detail page.
// Invalid text just returns to the detail page without creating anything.
func (p *PostController) AddComment(ctx *gin.Context) {
	post, ok := p.loadPost(ctx)
	if !ok {
		return
	}
	uid, ok := currentUserID(ctx)
	if !ok {
		ctx.Redirect(http.StatusFound, middleware.LoginPath)
		return
	}

	form := ParseCommentForm(ctx)
	if form.Valid() {
		comment := models.Comment{
			PostID:   post.ID,
			AuthorID: uid,
			Text:     utils.Sanitize(form.Text),
		}
		if err := p.db.Create(&comment).Error; err != nil {
			serverError(ctx, err)
			return
		}
	}

	ctx.Redirect(http.StatusFound, detailPath(post.ID))
}

// loadPost fetches the post addressed by the :id route parameter, rendering
// the 404 page when it does not exist.
func (p *PostController) loadPost(ctx *gin.Context) (models.Post, bool) {
	var post models.Post
	err := p.db.Preload("Author").Preload("Group").
		First(&post, "id = ?", ctx.Param("id")).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			utils.NotFoundPage(ctx)
		} else {
			serverError(ctx, err)
		}
		return models.Post{}, false
	}
	return post, true
}

func (p *PostController) renderPostForm(ctx *gin.Context, form *PostForm, post *models.Post) {
	var groups []models.Group
	if err := p.db.Order("title").Find(&groups).Error; err != nil {
		serverError(ctx, err)
		return
	}

	action := "/create/"
	if post != nil {
		action = detailPath(post.ID) + "edit/"
	}
	render(ctx, http.StatusOK, "post_create.html", gin.H{
		"Form":      form,
		"Groups":    groups,
		"Action":    action,
		"IsEdit":    post != nil,
		"CSRFToken": csrfToken(ctx),
	})
}

// saveImage stores an uploaded image under MediaRoot/posts/ with a unique
// name and returns its media-relative path. Requests without an image file
// yield an empty path and no error.
func (p *PostController) saveImage(ctx *gin.Context) (string, error) {
	file, err := ctx.FormFile("image")
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) || errors.Is(err, http.ErrNotMultipart) {
			return "", nil
		}
		return "", err
	}

	name := uuid.New().String() + filepath.Ext(file.Filename)
	rel := filepath.Join("posts", name)
	dst := filepath.Join(config.Get().MediaRoot, rel)
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", err
	}
	if err := ctx.SaveUploadedFile(file, dst); err != nil {
		return "", err
	}
	return filepath.ToSlash(rel), nil
}

func detailPath(postID uint) string {
	return fmt.Sprintf("/posts/%d/", postID)
}
