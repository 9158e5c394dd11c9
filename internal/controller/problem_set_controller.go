package controller

import (
	"strconv"

	"studyshare_backend/internal/service"
	"studyshare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProblemSetController struct {
	ContentService *service.ContentService
}

func NewProblemSetController(contentService *service.ContentService) *ProblemSetController {
	return &ProblemSetController{ContentService: contentService}
}

// ListVersions godoc
// @Summary 题集版本历史
// @Description 列出题集的全部不可变版本，仅所有者可见
// @Tags 题集
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/versions [get]
func (c *ProblemSetController) ListVersions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}

	versions, err := c.ContentService.ListVersions(uint(id), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"versions": versions})
}

// VersionQuestions godoc
// @Summary 版本题目快照
// @Description 返回某历史版本的完整题目快照（含正确答案），仅所有者可见
// @Tags 题集
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Param   versionId path int true "版本ID"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "版本不存在"
// @Router /api/contents/{id}/versions/{versionId}/questions [get]
func (c *ProblemSetController) VersionQuestions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	id, err := strconv.ParseUint(ctx.Param("id"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid content id")
		return
	}
	versionID, err := strconv.ParseUint(ctx.Param("versionId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid version id")
		return
	}

	questions, err := c.ContentService.VersionQuestions(uint(id), uint(versionID), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"questions": questions})
}
