package handler

import (
	"time"

	"github.com/blues/esl/internal/fund"
	"github.com/blues/esl/internal/model"
)

// 通用响应结构
type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message"`
	Data    interface{} `json:"data"`
}

// 分页信息结构
type Pagination struct {
	Page      int   `json:"page"`
	PageSize  int   `json:"pageSize"`
	Total     int64 `json:"total"`
	TotalPage int64 `json:"totalPage"`
}

// 请求模型

// CreateProjectRequest 创建项目请求
type CreateProjectRequest struct {
	Owner    string    `json:"owner" binding:"required"`
	Goal     int64     `json:"goal" binding:"required"`
	Deadline time.Time `json:"deadline" binding:"required"`
}

// FundProjectRequest 出资请求
type FundProjectRequest struct {
	Address string `json:"address" binding:"required"`
	Amount  int64  `json:"amount" binding:"required"`
}

// EndProjectRequest 关闭项目请求
type EndProjectRequest struct {
	Address string `json:"address" binding:"required"`
}

// WithdrawFundsRequest 撤资请求
type WithdrawFundsRequest struct {
	Address string `json:"address" binding:"required"`
}

// 响应模型

// ProjectResponse 项目响应模型（核心状态快照）
type ProjectResponse struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"owner"`
	Goal         int64     `json:"goal"`
	Deadline     time.Time `json:"deadline"`
	AmountRaised int64     `json:"amountRaised"`
	Ended        bool      `json:"ended"`
	Succeeded    bool      `json:"succeeded"`
}

// ProjectListItemResponse 项目列表项（读侧投影）
type ProjectListItemResponse struct {
	ID           int64     `json:"id"`
	Owner        string    `json:"owner"`
	Goal         int64     `json:"goal"`
	Deadline     time.Time `json:"deadline"`
	AmountRaised int64     `json:"amountRaised"`
	Status       string    `json:"status"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateProjectResponse 创建项目响应
type CreateProjectResponse struct {
	ProjectID int64 `json:"projectId"`
}

// ContributionResponse 未退出资查询响应
type ContributionResponse struct {
	ProjectID int64  `json:"projectId"`
	Address   string `json:"address"`
	Amount    int64  `json:"amount"`
}

// ContributeRecordResponse 出资记录响应模型
type ContributeRecordResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Address   string    `json:"address"`
	Amount    int64     `json:"amount"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetProjectContributeRecordsResponse 获取项目出资记录响应
type GetProjectContributeRecordsResponse struct {
	Records    []ContributeRecordResponse `json:"records"`
	Pagination Pagination                 `json:"pagination"`
}

// RefundRecordResponse 撤资记录响应模型
type RefundRecordResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	Address   string    `json:"address"`
	Amount    int64     `json:"amount"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetProjectRefundsResponse 获取项目撤资记录响应
type GetProjectRefundsResponse struct {
	Refunds    []RefundRecordResponse `json:"refunds"`
	Pagination Pagination             `json:"pagination"`
}

// EventResponse 通知事件响应模型
type EventResponse struct {
	ID        int64     `json:"id"`
	ProjectID int64     `json:"projectId"`
	EventType string    `json:"eventType"`
	Data      string    `json:"data"`
	CreatedAt time.Time `json:"createdAt"`
}

// GetProjectEventsResponse 获取项目通知事件响应
type GetProjectEventsResponse struct {
	Events     []EventResponse `json:"events"`
	Pagination Pagination      `json:"pagination"`
}

// 转换函数

// ToProjectResponse 将核心项目快照转换为响应模型
func ToProjectResponse(project fund.Project) ProjectResponse {
	return ProjectResponse{
		ID:           project.ID,
		Owner:        project.Owner,
		Goal:         project.Goal,
		Deadline:     project.Deadline,
		AmountRaised: project.AmountRaised,
		Ended:        project.Ended,
		Succeeded:    project.Succeeded,
	}
}

// ToProjectListItemResponse 将项目投影转换为列表项
func ToProjectListItemResponse(project *model.ProjectModel) ProjectListItemResponse {
	return ProjectListItemResponse{
		ID:           project.Id,
		Owner:        project.Owner,
		Goal:         project.Goal,
		Deadline:     project.Deadline,
		AmountRaised: project.AmountRaised,
		Status:       string(project.Status),
		CreatedAt:    project.CreatedAt,
	}
}

// ToProjectListItemResponseList 批量转换项目投影
func ToProjectListItemResponseList(projects []model.ProjectModel) []ProjectListItemResponse {
	result := make([]ProjectListItemResponse, len(projects))
	for i, project := range projects {
		result[i] = ToProjectListItemResponse(&project)
	}
	return result
}

// ToContributeRecordResponseList 批量转换出资记录
func ToContributeRecordResponseList(records []model.ContributeRecordModel) []ContributeRecordResponse {
	result := make([]ContributeRecordResponse, len(records))
	for i, record := range records {
		result[i] = ContributeRecordResponse{
			ID:        record.Id,
			ProjectID: record.ProjectId,
			Address:   record.Address,
			Amount:    record.Amount,
			CreatedAt: record.CreatedAt,
		}
	}
	return result
}

// ToRefundRecordResponseList 批量转换撤资记录
func ToRefundRecordResponseList(records []model.RefundRecordModel) []RefundRecordResponse {
	result := make([]RefundRecordResponse, len(records))
	for i, record := range records {
		result[i] = RefundRecordResponse{
			ID:        record.Id,
			ProjectID: record.ProjectId,
			Address:   record.Address,
			Amount:    record.Amount,
			Status:    string(record.Status),
			CreatedAt: record.CreatedAt,
		}
	}
	return result
}

// ToEventResponseList 批量转换通知事件
func ToEventResponseList(events []model.EventModel) []EventResponse {
	result := make([]EventResponse, len(events))
	for i, event := range events {
		result[i] = EventResponse{
			ID:        event.Id,
			ProjectID: event.ProjectId,
			EventType: event.EventType,
			Data:      event.Data,
			CreatedAt: event.CreatedAt,
		}
	}
	return result
}
