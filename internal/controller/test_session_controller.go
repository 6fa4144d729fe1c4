package controller

import (
	"career_assess_backend/internal/model"
	"career_assess_backend/internal/service"
	"career_assess_backend/internal/util"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

type TestSessionController struct {
	Service *service.TestSessionService
}

func NewTestSessionController(svc *service.TestSessionService) *TestSessionController {
	return &TestSessionController{Service: svc}
}

// InitializeRequest 数字字段同时接受数字和数字字符串
type InitializeRequest struct {
	TestType      string          `json:"testType" binding:"required" example:"technical"`
	Level         string          `json:"level" binding:"required" example:"beginner"`
	QuestionCount *model.IntParam `json:"questionCount" binding:"required" swaggertype:"integer" example:"10"`
	TimeLimit     *model.IntParam `json:"timeLimit" swaggertype:"integer" example:"30"`
	Domain        string          `json:"domain" example:"all"`
}

// SubmitAnswerRequest answer 为字母 A-D 或下标 0-3
type SubmitAnswerRequest struct {
	SessionID      string          `json:"sessionId" binding:"required"`
	QuestionNumber *model.IntParam `json:"questionNumber" binding:"required" swaggertype:"integer" example:"1"`
	Answer         *model.Answer   `json:"answer" binding:"required" swaggertype:"string" example:"B"`
}

// @Summary 初始化测评会话
// @Description 按测评类型和难度出题，返回会话ID和第一题
// @Tags 职业测评
// @Accept json
// @Produce json
// @Param body body InitializeRequest true "测评配置"
// @Success 200 {object} util.Response{data=service.InitializeResult}
// @Failure 400 {object} util.Response
// @Failure 502 {object} util.Response
// @Failure 504 {object} util.Response
// @Router /test/initialize [post]
func (c *TestSessionController) Initialize(ctx *gin.Context) {
	var req InitializeRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing required fields: testType, level, questionCount")
		return
	}

	params := service.InitializeParams{
		TestType:      req.TestType,
		Level:         req.Level,
		QuestionCount: int(*req.QuestionCount),
		Domain:        req.Domain,
	}
	if req.TimeLimit != nil {
		t := int(*req.TimeLimit)
		params.TimeLimit = &t
	}

	result, err := c.Service.Initialize(ctx.Request.Context(), params)
	if err != nil {
		respondError(ctx, err)
		return
	}

	util.SuccessWithMessage(ctx, "Test session initialized successfully", result)
}

// @Summary 获取当前题目
// @Tags 职业测评
// @Produce json
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.CurrentQuestion}
// @Failure 404 {object} util.Response
// @Router /test/question/{sessionId} [get]
func (c *TestSessionController) GetQuestion(ctx *gin.Context) {
	result, err := c.Service.GetCurrentQuestion(ctx.Param("sessionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 提交答案
// @Description 答案可为字母 A-D 或下标 0-3；只有回答当前题时才前进
// @Tags 职业测评
// @Accept json
// @Produce json
// @Param body body SubmitAnswerRequest true "答案"
// @Success 200 {object} util.Response{data=service.SubmitAnswerResult}
// @Failure 400 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /test/answer [post]
func (c *TestSessionController) SubmitAnswer(ctx *gin.Context) {
	var req SubmitAnswerRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, "Missing or invalid fields: sessionId, answer, questionNumber")
		return
	}

	result, err := c.Service.SubmitAnswer(req.SessionID, int(*req.QuestionNumber), *req.Answer)
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.SuccessWithMessage(ctx, "Answer submitted successfully", result)
}

// @Summary 获取测评结果
// @Description 结果只能读取一次，读取后会话即被删除
// @Tags 职业测评
// @Produce json
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionResults}
// @Failure 404 {object} util.Response
// @Router /test/results/{sessionId} [get]
func (c *TestSessionController) GetResults(ctx *gin.Context) {
	result, err := c.Service.GetResults(ctx.Param("sessionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 获取会话状态
// @Tags 职业测评
// @Produce json
// @Param sessionId path string true "会话ID"
// @Success 200 {object} util.Response{data=service.SessionStatus}
// @Failure 404 {object} util.Response
// @Router /test/status/{sessionId} [get]
func (c *TestSessionController) GetStatus(ctx *gin.Context) {
	result, err := c.Service.GetStatus(ctx.Param("sessionId"))
	if err != nil {
		respondError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

func respondError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, util.ErrInvalidInput):
		util.BadRequest(ctx, err.Error())
	case errors.Is(err, util.ErrSessionNotFound):
		util.Error(ctx, http.StatusNotFound, "Test session not found")
	case errors.Is(err, util.ErrNoQuestionsAvailable):
		util.Error(ctx, http.StatusInternalServerError, util.ErrNoQuestionsAvailable.Error())
	case errors.Is(err, util.ErrQuestionSourceTimeout):
		util.Error(ctx, http.StatusGatewayTimeout, util.ErrQuestionSourceTimeout.Error())
	case errors.Is(err, util.ErrQuestionSourceFailure):
		util.Error(ctx, http.StatusBadGateway, util.ErrQuestionSourceFailure.Error())
	case errors.Is(err, util.ErrInvalidSession):
		util.Error(ctx, http.StatusInternalServerError, util.ErrInvalidSession.Error())
	default:
		util.LogInternalError(ctx, err)
	}
}
