package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tazhibayda/devconnect-service/internal/domain"
	"github.com/tazhibayda/devconnect-service/internal/queue"
	"github.com/tazhibayda/devconnect-service/internal/service"
)

// MyProfile godoc
// @Summary Caller's profile
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/me [get]
func (h *Handler) MyProfile(c *gin.Context) {
	p, err := h.Profiles.GetByOwner(c.Request.Context(), currentUID(c))
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// UpsertProfile godoc
// @Summary Create or update own profile
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.ProfileInput true "profile"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Router /api/profile [post]
func (h *Handler) UpsertProfile(c *gin.Context) {
	var in service.ProfileInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "status and skills are required"})
		return
	}
	p, err := h.Profiles.Upsert(c.Request.Context(), currentUID(c), in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// ListProfiles godoc
// @Summary All profiles
// @Tags profile
// @Produce json
// @Success 200 {array} domain.Profile
// @Router /api/profile [get]
func (h *Handler) ListProfiles(c *gin.Context) {
	profiles, err := h.Profiles.List(c.Request.Context())
	if err != nil {
		h.fail(c, err)
		return
	}
	if profiles == nil {
		profiles = []domain.Profile{}
	}
	c.JSON(http.StatusOK, profiles)
}

// ProfileByUser godoc
// @Summary Profile by owner id
// @Tags profile
// @Produce json
// @Param user_id path string true "user id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/user/{user_id} [get]
func (h *Handler) ProfileByUser(c *gin.Context) {
	ownerID, ok := pathOID(c, "user_id")
	if !ok {
		return
	}
	p, err := h.Profiles.GetByOwner(c.Request.Context(), ownerID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddExperience godoc
// @Summary Prepend an experience entry
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.ExperienceInput true "experience"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/profile/experience [put]
func (h *Handler) AddExperience(c *gin.Context) {
	var in service.ExperienceInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "title, company and from are required"})
		return
	}
	uid := currentUID(c)
	p, err := h.Profiles.AddExperience(c.Request.Context(), uid, uid, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveExperience godoc
// @Summary Remove an experience entry by id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param exp_id path string true "experience id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/experience/{exp_id} [delete]
func (h *Handler) RemoveExperience(c *gin.Context) {
	expID, ok := pathOID(c, "exp_id")
	if !ok {
		return
	}
	uid := currentUID(c)
	p, err := h.Profiles.RemoveExperience(c.Request.Context(), uid, uid, expID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// AddEducation godoc
// @Summary Prepend an education entry
// @Tags profile
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param payload body service.EducationInput true "education"
// @Success 200 {object} domain.Profile
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/profile/education [put]
func (h *Handler) AddEducation(c *gin.Context) {
	var in service.EducationInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "school, degree, field_of_study and from are required"})
		return
	}
	uid := currentUID(c)
	p, err := h.Profiles.AddEducation(c.Request.Context(), uid, uid, in)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// RemoveEducation godoc
// @Summary Remove an education entry by id
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Param edu_id path string true "education id"
// @Success 200 {object} domain.Profile
// @Failure 404 {object} map[string]string
// @Router /api/profile/education/{edu_id} [delete]
func (h *Handler) RemoveEducation(c *gin.Context) {
	eduID, ok := pathOID(c, "edu_id")
	if !ok {
		return
	}
	uid := currentUID(c)
	p, err := h.Profiles.RemoveEducation(c.Request.Context(), uid, uid, eduID)
	if err != nil {
		h.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// DeleteAccount godoc
// @Summary Delete own account, profile and posts
// @Tags profile
// @Security BearerAuth
// @Produce json
// @Success 200 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /api/profile [delete]
func (h *Handler) DeleteAccount(c *gin.Context) {
	uid := currentUID(c)
	removed, err := h.Users.DeleteAccount(c.Request.Context(), uid)
	if err != nil {
		h.fail(c, err)
		return
	}
	h.publish(c, queue.KeyAccountDeleted, queue.AccountDeleted{UserID: uid, PostsRemoved: removed})
	c.JSON(http.StatusOK, gin.H{"msg": "account removed"})
}
