package controller

import (
	"strconv"

	"studyshare_backend/internal/model"
	"studyshare_backend/internal/repository"
	"studyshare_backend/internal/service"
	"studyshare_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ContentController struct {
	ContentService *service.ContentService
}

func NewContentController(contentService *service.ContentService) *ContentController {
	return &ContentController{ContentService: contentService}
}

// CreateContent godoc
// @Summary 创建内容
// @Description 创建笔记、闪卡或题集，并在同一事务内校验配额
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   body body service.CreateContentRequest true "内容"
// @Success 201 {object} util.Response{data=object} "创建成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 409 {object} util.Response "配额已满"
// @Router /api/contents [post]
func (c *ContentController) CreateContent(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req service.CreateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	id, err := c.ContentService.Create(claims.UserID, claims.TenantID, claims.IsAdmin(), &req)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Created(ctx, gin.H{"id": id})
}

// GetContent godoc
// @Summary 获取内容详情
// @Description 按可见性规则返回内容及其载荷；不可见与不存在不可区分
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response{data=service.ContentDetail} "成功"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [get]
func (c *ContentController) GetContent(ctx *gin.Context) {
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

	detail, err := c.ContentService.Get(uint(id), claims.UserID, claims.TenantID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, detail)
}

// UpdateContent godoc
// @Summary 更新内容
// @Description 仅所有者可更新；题集附带题目时追加新版本
// @Tags 内容
// @Accept  json
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Param   body body service.UpdateContentRequest true "内容"
// @Success 200 {object} util.Response "更新成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "内容不存在"
// @Failure 409 {object} util.Response "并发编辑冲突"
// @Router /api/contents/{id} [put]
func (c *ContentController) UpdateContent(ctx *gin.Context) {
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

	var req service.UpdateContentRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	if err := c.ContentService.Update(uint(id), claims.UserID, claims.IsAdmin(), &req); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, gin.H{"id": id})
}

// DeleteContent godoc
// @Summary 删除内容
// @Description 软删除内容封装行，载荷与历史版本保留
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   id path int true "内容ID"
// @Success 200 {object} util.Response "删除成功"
// @Failure 403 {object} util.Response "权限不足"
// @Failure 404 {object} util.Response "内容不存在"
// @Router /api/contents/{id} [delete]
func (c *ContentController) DeleteContent(ctx *gin.Context) {
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

	if err := c.ContentService.SoftDelete(uint(id), claims.UserID); err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, nil)
}

// MyContents godoc
// @Summary 我的内容
// @Description 分页列出当前用户拥有的全部内容（含草稿）
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Router /api/contents/mine [get]
func (c *ContentController) MyContents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	contents, total, err := c.ContentService.ListOwnedBy(claims.UserID, page, limit)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  contents,
		Total: total,
		Page:  page,
		Limit: limit,
	})
}

// SearchContents godoc
// @Summary 搜索内容
// @Description 在可见范围内按关键字、类型、课程过滤并排序，附带评分聚合
// @Tags 内容
// @Produce  json
// @Security BearerAuth
// @Param   keyword query string false "标题或描述关键字"
// @Param   kind query string false "内容类型" Enums(note, flash_card, problem_set)
// @Param   lectureCode query string false "课程代码"
// @Param   sort query string false "排序" Enums(updated_desc, updated_asc, rating_desc, rating_asc)
// @Param   page query int false "页码"
// @Param   limit query int false "每页数量"
// @Success 200 {object} util.Response{data=util.PageResponse} "成功"
// @Failure 400 {object} util.Response "请求参数错误"
// @Router /api/contents [get]
func (c *ContentController) SearchContents(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	page, _ := strconv.Atoi(ctx.DefaultQuery("page", "1"))
	limit, _ := strconv.Atoi(ctx.DefaultQuery("limit", "20"))

	params := repository.ContentSearchParams{
		Keyword:     ctx.Query("keyword"),
		Kind:        model.PayloadKind(ctx.Query("kind")),
		LectureCode: ctx.Query("lectureCode"),
		Sort:        ctx.Query("sort"),
		Page:        page,
		Limit:       limit,
	}

	rows, total, err := c.ContentService.Search(params, claims.UserID, claims.TenantID)
	if err != nil {
		util.HandleError(ctx, err)
		return
	}

	util.Success(ctx, util.PageResponse{
		List:  rows,
		Total: total,
		Page:  params.Page,
		Limit: params.Limit,
	})
}
