package http

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/queue"
)

// pathOID parses an ObjectID path param; unknown or mangled ids are a 404,
// same as a missing document.
func pathOID(c *gin.Context, name string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		return primitive.NilObjectID, false
	}
	return oid, true
}

type createPostReq struct {
	Text string `json:"text" binding:"required"`
}

// CreatePost godoc
// @Summary Add a post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body createPostReq true "post"
// @Success 201 {object} domain.Post
// @Failure 400 {object} map[string]string
// @Router /api/posts [post]
func (h *Handler) CreatePost(c *gin.Context) {
	var in createPostReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	p, err := h.Posts.Create(c.Request.Context(), currentUID(c), in.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// ListPosts godoc
// @Summary All posts, newest first
// @Tags posts
// @Produce json
// @Success 200 {array} domain.Post
// @Router /api/posts [get]
func (h *Handler) ListPosts(c *gin.Context) {
	var posts []domain.Post
	err := WithSpan(c.Request.Context(), "posts.list", func(ctx context.Context) error {
		var err error
		posts, err = h.Posts.List(ctx)
		return err
	})
	if err != nil {
		h.fail(c, err)
		return
	}
	if posts == nil {
		posts = []domain.Post{}
	}
	c.JSON(http.StatusOK, posts)
}

// GetPost godoc
// @Summary Post by id
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} domain.Post
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [get]
func (h *Handler) GetPost(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	p, err := h.Posts.Get(c.Request.Context(), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeletePost godoc
// @Summary Delete own post
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "post id"
// @Success 200 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/{id} [delete]
func (h *Handler) DeletePost(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	if err := h.Posts.Delete(c.Request.Context(), currentUID(c), id); err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"msg": "post removed"})
}

// LikePost godoc
// @Summary Like a post (idempotent)
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "post id"
// @Success 200 {array} domain.Like
// @Failure 404 {object} map[string]string
// @Router /api/posts/like/{id} [put]
func (h *Handler) LikePost(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	uid := currentUID(c)
	likes, noop, err := h.Posts.Like(c.Request.Context(), uid, id)
	if err != nil {
		h.fail(c, err)
		return
	}
	if noop {
		c.JSON(http.StatusOK, gin.H{"msg": "already liked this post", "likes": likes})
		return
	}
	h.publish(c, queue.KeyPostLiked, queue.PostLiked{PostID: id, UserID: uid})
	c.JSON(http.StatusOK, likes)
}

// UnlikePost godoc
// @Summary Remove own like
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "post id"
// @Success 200 {array} domain.Like
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/unlike/{id} [put]
func (h *Handler) UnlikePost(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	likes, err := h.Posts.Unlike(c.Request.Context(), currentUID(c), id)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, likes)
}

type commentReq struct {
	Text string `json:"text" binding:"required"`
}

// AddComment godoc
// @Summary Comment on a post
// @Tags posts
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path string true "post id"
// @Param payload body commentReq true "comment"
// @Success 200 {array} domain.Comment
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/comment/{id} [post]
func (h *Handler) AddComment(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	var in commentReq
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "text is required"})
		return
	}
	uid := currentUID(c)
	comments, err := h.Posts.AddComment(c.Request.Context(), uid, id, in.Text)
	if err != nil {
		h.fail(c, err)
		return
	}
	if len(comments) > 0 {
		h.publish(c, queue.KeyPostCommented, queue.PostCommented{
			PostID: id, CommentID: comments[0].ID, UserID: uid,
		})
	}
	c.JSON(http.StatusOK, comments)
}

// DeleteComment godoc
// @Summary Delete own comment
// @Tags posts
// @Security BearerAuth
// @Produce json
// @Param id path string true "post id"
// @Param comment_id path string true "comment id"
// @Success 200 {array} domain.Comment
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/posts/comment/{id}/{comment_id} [delete]
func (h *Handler) DeleteComment(c *gin.Context) {
	id, ok := pathOID(c, "id")
	if !ok {
		return
	}
	commentID, ok := pathOID(c, "comment_id")
	if !ok {
		return
	}
	comments, err := h.Posts.DeleteComment(c.Request.Context(), currentUID(c), id, commentID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, comments)
}
