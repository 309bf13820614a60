package web

import (
	"net/http"

	"gym_backend/internal/dto"
	"gym_backend/pkg/apperrors"

	"github.com/gin-gonic/gin"
)

func transactionText(t dto.TransactionResponse) string {
	return t.Bill + " " + t.Category + " " + t.CreatedAt
}

// Finance - транзакции зала и итоги (доход, расход, прибыль)
func (p *Pages) Finance(c *gin.Context, s *Session) {
	p.renderFinance(c, s, http.StatusOK, nil)
}

func (p *Pages) renderFinance(c *gin.Context, s *Session, status int, formErr error) {
	db := p.GetDB(c)
	query := &dto.TransactionQuery{GymID: s.GymFilter()}
	data := gin.H{}
	if formErr != nil {
		data["FormError"] = errorMessage(c, formErr)
	}

	txs, err := p.services.TransactionService.List(db, query)
	if err != nil {
		data["Error"] = errorMessage(c, err)
		txs = []dto.TransactionResponse{}
	} else if summary, err := p.services.TransactionService.Summary(db, query); err != nil {
		data["Error"] = errorMessage(c, err)
	} else {
		data["Summary"] = summary
	}
	data["List"] = NewListView(txs, pageParam(c), c.Query("q"), transactionText)

	p.render(c, status, "finance", s, data)
}

func (p *Pages) CreateTransaction(c *gin.Context, s *Session) {
	var req dto.CreateTransactionRequest
	err := p.bindForm(c, &req, func() {
		req.GymID = s.GymID
		req.SubscriptionID = nonZero(req.SubscriptionID)
	})
	if err != nil {
		p.renderFinance(c, s, errorStatus(err), err)
		return
	}
	if _, err := p.services.TransactionService.Create(p.GetDB(c), &req); err != nil {
		p.renderFinance(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/finance?page=1")
}

func (p *Pages) DeleteTransaction(c *gin.Context, s *Session) {
	id, ok := paramID(c)
	if !ok {
		p.renderFinance(c, s, http.StatusNotFound, apperrors.ErrTransactionNotFound)
		return
	}
	db := p.GetDB(c)
	tx, err := p.services.TransactionService.Get(db, id)
	if err == nil && !s.Owns(tx.GymID) {
		err = apperrors.ErrTransactionNotFound
	}
	if err == nil {
		err = p.services.TransactionService.Delete(db, id)
	}
	if err != nil {
		p.renderFinance(c, s, errorStatus(err), err)
		return
	}
	c.Redirect(http.StatusSeeOther, "/ui/finance?page=1")
}
