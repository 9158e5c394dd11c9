package controller

import (
	"strconv"

	"studyshare_backend/internal/apperr"
	"studyshare_backend/internal/service"
	"studyshare_backend/internal/util"
	"studyshare_backend/pkg/monitoring"

	"github.com/gin-gonic/gin"
)

type ExamController struct {
	ExamService *service.ExamService
}

func NewExamController(examService *service.ExamService) *ExamController {
	return &ExamController{ExamService: examService}
}

// StartExam godoc
// @Summary 开始考试
// @Description 按题集最新版本签发答题会话；响应中不包含任何正确答案
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=service.ExamStartResult} "成功"
// @Failure 400 {object} util.Response "不是题集"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/exam/start [post]
func (c *ExamController) StartExam(ctx *gin.Context) {
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

	result, err := c.ExamService.Start(ctx.Request.Context(), uint(id), claims.UserID, claims.TenantID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// SubmitRequest 答卷
// swagger:model SubmitRequest
type SubmitRequest struct {
	// an empty map is a valid (all blank) submission
	Answers map[uint]uint `json:"answers"`
}

// SubmitExam godoc
// @Summary 提交答卷
// @Description 按开始考试时签发的答案快照评分；题集在答题期间被修改则返回会话过期
// @Tags 考试
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Param   body body SubmitRequest true "答案，题目ID到选项ID"
// @Success 200 {object} util.Response{data=model.ExamAttempt} "评分结果"
// @Failure 400 {object} util.Response "答案数量超出题目数量"
// @Failure 409 {object} util.Response "会话过期，需重新开始"
// @Router /api/contents/{id}/exam/submit [post]
func (c *ExamController) SubmitExam(ctx *gin.Context) {
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

	var req SubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	attempt, err := c.ExamService.Submit(ctx.Request.Context(), uint(id), claims.UserID, req.Answers)
	if err != nil {
		if apperr.KindOf(err) == apperr.KindStaleSession {
			monitoring.ExamSubmissions.WithLabelValues("stale").Inc()
		} else {
			monitoring.ExamSubmissions.WithLabelValues("rejected").Inc()
		}
		util.HandleError(ctx, err)
		return
	}

	monitoring.ExamSubmissions.WithLabelValues("scored").Inc()
	util.Success(ctx, attempt)
}

// AttemptScore godoc
// @Summary 查询单次成绩
// @Description 返回一次答题的得分明细，仅本人可见
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   attemptId path int true "答题记录ID"
// @Success 200 {object} util.Response{data=service.AttemptResult} "成功"
// @Failure 404 {object} util.Response "记录不存在"
// @Router /api/exam/attempts/{attemptId} [get]
func (c *ExamController) AttemptScore(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	attemptID, err := strconv.ParseUint(ctx.Param("attemptId"), 10, 32)
	if err != nil {
		util.BadRequest(ctx, "invalid attempt id")
		return
	}

	result, err := c.ExamService.Score(uint(attemptID), claims.UserID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// ExamHistory godoc
// @Summary 答题历史
// @Description 列出当前用户在该题集所有版本上的答题记录
// @Tags 考试
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Param   limit query int false "数量上限"
// @Success 200 {object} util.Response{data=object} "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/exam/history [get]
func (c *ExamController) ExamHistory(ctx *gin.Context) {
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
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "10"))

	results, err := c.ExamService.History(uint(id), claims.UserID, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"attempts": results})
}
