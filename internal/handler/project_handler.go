package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/logic"
)

// ProjectHandler 项目处理器：写操作走核心控制器，查询走读侧投影
type ProjectHandler struct {
	service      *fund.Service
	projectLogic *logic.ProjectLogic
}

// NewProjectHandler 创建项目处理器
func NewProjectHandler(service *fund.Service, db *gorm.DB) *ProjectHandler {
	return &ProjectHandler{
		service:      service,
		projectLogic: logic.NewProjectLogic(db),
	}
}

// CreateProject 创建项目
func (h *ProjectHandler) CreateProject(c *gin.Context) {
	var req CreateProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	id, err := h.service.CreateProject(req.Owner, req.Goal, req.Deadline)
	if err != nil {
		OperationErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusCreated, "项目创建成功", CreateProjectResponse{ProjectID: id})
}

// FundProject 向项目出资
func (h *ProjectHandler) FundProject(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req FundProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.FundProject(req.Address, projectId, req.Amount); err != nil {
		OperationErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "出资成功", nil)
}

// EndProject 关闭项目
func (h *ProjectHandler) EndProject(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req EndProjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.EndProject(req.Address, projectId); err != nil {
		OperationErrorResponse(c, err)
		return
	}

	project, _ := h.service.GetProject(projectId)
	SuccessResponse(c, http.StatusOK, "项目已关闭", ToProjectResponse(project))
}

// WithdrawFunds 从失败项目撤回出资
func (h *ProjectHandler) WithdrawFunds(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	var req WithdrawFundsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		ErrorResponse(c, http.StatusBadRequest, err.Error())
		return
	}

	if err := h.service.WithdrawFunds(req.Address, projectId); err != nil {
		OperationErrorResponse(c, err)
		return
	}

	SuccessResponse(c, http.StatusOK, "撤资成功", nil)
}

// GetProjects 获取项目列表（读侧投影）
func (h *ProjectHandler) GetProjects(c *gin.Context) {
	status := c.Query("status")
	owner := c.Query("owner")
	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	projects, total, err := h.projectLogic.GetProjects(status, owner, page, pageSize)
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目列表成功", gin.H{
		"projects": ToProjectListItemResponseList(projects),
		"pagination": Pagination{
			Page:      page,
			PageSize:  pageSize,
			Total:     total,
			TotalPage: (total + int64(pageSize) - 1) / int64(pageSize),
		},
	})
}

// GetProject 获取项目详情（核心状态快照）
func (h *ProjectHandler) GetProject(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	project, found := h.service.GetProject(projectId)
	if !found {
		ErrorResponse(c, http.StatusNotFound, "项目不存在")
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目详情成功", ToProjectResponse(project))
}

// GetContribution 查询出资人未退出资金额
func (h *ProjectHandler) GetContribution(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}
	address := c.Param("address")

	amount := h.service.GetContribution(projectId, address)
	SuccessResponse(c, http.StatusOK, "获取出资金额成功", ContributionResponse{
		ProjectID: projectId,
		Address:   address,
		Amount:    amount,
	})
}

// CountProjects 已创建项目数量
func (h *ProjectHandler) CountProjects(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "获取项目数量成功", gin.H{"count": h.service.Count()})
}

// GetProjectStats 获取项目统计信息
func (h *ProjectHandler) GetProjectStats(c *gin.Context) {
	projectId, ok := parseProjectId(c)
	if !ok {
		return
	}

	stats, err := h.projectLogic.GetProjectStats(projectId)
	if err != nil {
		if err == logic.ErrProjectNotFound {
			ErrorResponse(c, http.StatusNotFound, "项目不存在")
			return
		}
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取项目统计成功", stats)
}

// GetAllProjectStats 获取平台整体统计信息
func (h *ProjectHandler) GetAllProjectStats(c *gin.Context) {
	stats, err := h.projectLogic.GetAllProjectStats()
	if err != nil {
		ErrorResponse(c, http.StatusInternalServerError, err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "获取平台统计成功", stats)
}

// parseProjectId 解析路径中的项目ID
func parseProjectId(c *gin.Context) (int64, bool) {
	projectId, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		ErrorResponse(c, http.StatusBadRequest, "无效的项目ID")
		return 0, false
	}
	return projectId, true
}
