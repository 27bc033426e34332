package handler

import (
	"net/http"

	"github.com/valyala/fasthttp"
	"go.uber.org/zap"

	"github.com/studybuddy/backend/api/transport"
	"github.com/studybuddy/backend/domain"
	"github.com/studybuddy/backend/pkg/httpcontext"
	rewardUC "github.com/studybuddy/backend/usecase/reward"
)

type RewardHandler struct {
	baseHandler
	uc *rewardUC.UseCase
}

func NewRewardHandler(uc *rewardUC.UseCase, adapter *httpcontext.Adapter, logger *zap.Logger) *RewardHandler {
	return &RewardHandler{
		baseHandler: newBaseHandler(adapter, logger),
		uc:          uc,
	}
}

// @Summary List reward catalog
// @Tags rewards
// @Router /api/v1/rewards [get]
func (h *RewardHandler) GetRewards(ctx *fasthttp.RequestCtx) {
	if h.userID(ctx) == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	rewards, err := h.uc.ListRewards(stdCtx)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, rewards)
}

// @Summary Redeem a reward
// @Tags rewards
// @Router /api/v1/rewards/{id}/redeem [post]
func (h *RewardHandler) RedeemReward(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	id, _ := ctx.UserValue("id").(string)
	if id == "" {
		h.respondJSON(ctx, http.StatusBadRequest, transport.NewError(string(domain.ErrCodeInvalid), "missing reward id", nil))
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	redemption, err := h.uc.Redeem(stdCtx, userID, id)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusCreated, redemption)
}

// @Summary List redeemed rewards
// @Tags rewards
// @Router /api/v1/rewards/redeemed [get]
func (h *RewardHandler) GetRedemptions(ctx *fasthttp.RequestCtx) {
	userID := h.userID(ctx)
	if userID == "" {
		return
	}

	stdCtx, cancel := h.requestContext(ctx)
	defer cancel()

	redemptions, err := h.uc.ListRedemptions(stdCtx, userID)
	if err != nil {
		h.respondError(ctx, err)
		return
	}
	h.respondSuccess(ctx, http.StatusOK, redemptions)
}
