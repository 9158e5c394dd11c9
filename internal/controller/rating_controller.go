package controller

import (
	"strconv"

	"studyshare_backend/internal/service"
	"studyshare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type RatingController struct {
	RatingService *service.RatingService
}

func NewRatingController(ratingService *service.RatingService) *RatingController {
	return &RatingController{RatingService: ratingService}
}

// RateRequest 评分请求
// swagger:model RateRequest
type RateRequest struct {
	Rating int `json:"rating" binding:"required,min=1,max=5"`
}

// RateContent godoc
// @Summary 评分
// @Description 对内容打 1-5 分，重复评分覆盖旧值；题集需先完成答题
// @Tags 评分
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Param   body body RateRequest true "分值"
// @Success 200 {object} util.Response{data=service.RatingResult} "最新聚合"
// @Failure 400 {object} util.Response "分值越界"
// @Failure 403 {object} util.Response "未完成答题"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/rating [put]
func (c *RatingController) RateContent(ctx *gin.Context) {
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

	var req RateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.RatingService.Rate(claims.UserID, uint(id), req.Rating)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}

// RatingSummary godoc
// @Summary 评分聚合
// @Description 返回内容的平均分、评分人数和当前用户自己的评分
// @Tags 评分
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=service.RatingResult} "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id}/rating [get]
func (c *RatingController) RatingSummary(ctx *gin.Context) {
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

	result, err := c.RatingService.Summary(claims.UserID, uint(id))
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, result)
}
