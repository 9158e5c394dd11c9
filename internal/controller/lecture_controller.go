package controller

import (
	"studyshare_backend/internal/service"
	"studyshare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type LectureController struct {
	LectureService *service.LectureService
}

func NewLectureController(lectureService *service.LectureService) *LectureController {
	return &LectureController{LectureService: lectureService}
}

// CreateLectureRequest 课程创建请求
// swagger:model CreateLectureRequest
type CreateLectureRequest struct {
	Code  string `json:"code" binding:"required"`
	Title string `json:"title" binding:"required"`
}

// CreateLecture godoc
// @Summary 创建课程
// @Description 在当前租户下登记课程代码，仅管理员可用
// @Tags 课程
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body CreateLectureRequest true "课程"
// @Success 201 {object} util.Response{data=model.Lecture} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 409 {object} util.Response "课程代码已存在"
// @Router /api/lectures [post]
func (c *LectureController) CreateLecture(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req CreateLectureRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	lecture, err := c.LectureService.Create(claims.TenantID, req.Code, req.Title)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, lecture)
}

// ListLectures godoc
// @Summary 课程列表
// @Description 列出当前租户的全部课程
// @Tags 课程
// @Produce  json
// @Security BearerAuth
// @Success 200 {object} util.Response{data=object} "成功"
// @Router /api/lectures [get]
func (c *LectureController) ListLectures(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	lectures, err := c.LectureService.ListByTenant(claims.TenantID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"lectures": lectures})
}
