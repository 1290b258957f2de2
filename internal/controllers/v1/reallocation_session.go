package v1

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/budget-desk/backend/internal/httputil"
	"github.com/budget-desk/backend/internal/models"
	"github.com/budget-desk/backend/internal/reallocation"
	"github.com/gin-contrib/requestid"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"
	"github.com/shopspring/decimal"
)

var ErrIncompleteSelection = errors.New("company, cost center, fiscal year, account and month must be set")

// RegisterReallocationSessionRoutes registers the routes for reallocation sessions with
// the RouterGroup that is passed.
func RegisterReallocationSessionRoutes(r *gin.RouterGroup) {
	// Root group
	{
		r.OPTIONS("", OptionsReallocationSessionList)
		r.POST("", CreateReallocationSession)
	}

	// Session with ID
	{
		r.OPTIONS("/:id", OptionsReallocationSessionDetail)
		r.GET("/:id", GetReallocationSession)
		r.PATCH("/:id", UpdateReallocationSession)
		r.DELETE("/:id", DeleteReallocationSession)
	}

	{
		r.OPTIONS("/:id/submit", OptionsReallocationSessionSubmit)
		r.POST("/:id/submit", SubmitReallocationSession)
	}
}

// session returns the open session for the ID in the URI.
func session(c *gin.Context) (*reallocation.Session, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return nil, err
	}

	s, ok := sessions.Get(uri.ID.UUID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

// takeSession removes the open session for the ID in the URI from the store,
// so that no other request can use it until it is put back.
func takeSession(c *gin.Context) (*reallocation.Session, error) {
	var uri URIID
	err := c.ShouldBindUri(&uri)
	if err != nil {
		return nil, err
	}

	s, ok := sessions.Take(uri.ID.UUID)
	if !ok {
		return nil, ErrSessionNotFound
	}

	return s, nil
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reallocation Sessions
// @Success		204
// @Router			/v1/reallocation-sessions [options]
func OptionsReallocationSessionList(c *gin.Context) {
	httputil.OptionsPost(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reallocation Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reallocation-sessions/{id} [options]
func OptionsReallocationSessionDetail(c *gin.Context) {
	_, err := session(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsGetPatchDelete(c)
}

// @Summary		Allowed HTTP verbs
// @Description	Returns an empty response with the HTTP Header "allow" set to the allowed HTTP verbs
// @Tags			Reallocation Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reallocation-sessions/{id}/submit [options]
func OptionsReallocationSessionSubmit(c *gin.Context) {
	_, err := session(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	httputil.OptionsPost(c)
}

// @Summary		Open reallocation session
// @Description	Opens a session with an empty reallocation. The session lives in this process until it is submitted or deleted.
// @Tags			Reallocation Sessions
// @Produce		json
// @Success		201	{object}	ReallocationSessionResponse
// @Router			/v1/reallocation-sessions [post]
func CreateReallocationSession(c *gin.Context) {
	s := sessions.Open(sessionLookup())

	log.Debug().Str("request-id", requestid.Get(c)).Str("session", s.ID.String()).Msg("reallocation session opened")

	apiResource := newReallocationSession(c, s)
	c.JSON(http.StatusCreated, ReallocationSessionResponse{Data: &apiResource})
}

// @Summary		Get reallocation session
// @Description	Returns the current state of a reallocation session
// @Tags			Reallocation Sessions
// @Produce		json
// @Success		200	{object}	ReallocationSessionResponse
// @Failure		400	{object}	ReallocationSessionResponse
// @Failure		404	{object}	ReallocationSessionResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reallocation-sessions/{id} [get]
func GetReallocationSession(c *gin.Context) {
	s, err := session(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReallocationSessionResponse{
			Error: &e,
		})
		return
	}

	apiResource := newReallocationSession(c, s)
	c.JSON(http.StatusOK, ReallocationSessionResponse{Data: &apiResource})
}

// @Summary		Change reallocation field
// @Description	Changes one field of the reallocation.
// @Description
// @Description	Changing company, cost center, fiscal year, account or month clears all fields that depend on it.
// @Description	Changing the month loads the budget figures and waits for them.
// @Description	Changing the new budget recomputes difference, percentage change and new annual budget. If the new budget exceeds the master budget limit, a notification is returned.
// @Tags			Reallocation Sessions
// @Accept			json
// @Produce		json
// @Success		200		{object}	ReallocationSessionResponse
// @Failure		400		{object}	ReallocationSessionResponse
// @Failure		404		{object}	ReallocationSessionResponse
// @Param			id		path		URIID						true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Param			change	body		ReallocationSessionChange	true	"Change"
// @Router			/v1/reallocation-sessions/{id} [patch]
func UpdateReallocationSession(c *gin.Context) {
	s, err := session(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReallocationSessionResponse{
			Error: &e,
		})
		return
	}

	var change ReallocationSessionChange
	err = httputil.BindData(c, &change)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReallocationSessionResponse{
			Error: &e,
		})
		return
	}

	field, err := reallocation.ParseField(change.Field)
	if err != nil {
		e := err.Error()
		c.JSON(http.StatusBadRequest, ReallocationSessionResponse{
			Error: &e,
		})
		return
	}

	var response ReallocationSessionResponse
	if field.Identifying() {
		response, err = changeIdentifying(c, s, field, change.Value)
	} else {
		response, err = enterNewBudget(s, change.Value)
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), ReallocationSessionResponse{
			Error: &e,
		})
		return
	}

	apiResource := newReallocationSession(c, s)
	response.Data = &apiResource
	c.JSON(http.StatusOK, response)
}

// changeIdentifying sets an identifying field. For the month, the budget
// figures are looked up.
func changeIdentifying(c *gin.Context, s *reallocation.Session, field reallocation.Field, raw json.RawMessage) (ReallocationSessionResponse, error) {
	var value *string
	if len(raw) > 0 {
		err := json.Unmarshal(raw, &value)
		if err != nil {
			return ReallocationSessionResponse{}, httputil.ErrInvalidBody
		}
	}

	v := ""
	if value != nil {
		v = *value
	}

	err := s.ChangeIdentifying(field, v)
	if err != nil {
		return ReallocationSessionResponse{}, err
	}

	if field != reallocation.FieldMonth {
		return ReallocationSessionResponse{}, nil
	}

	result, err := s.SelectMonth(c.Request.Context()).Wait(c.Request.Context())
	if err != nil {
		return ReallocationSessionResponse{}, err
	}

	response := ReallocationSessionResponse{Lookup: newLookupOutcome(result)}
	if result.Warning != nil {
		n := result.Warning.Notification()
		response.Notification = &n
	}

	return response, nil
}

// enterNewBudget sets the new budget and recomputes the derived fields.
func enterNewBudget(s *reallocation.Session, raw json.RawMessage) (ReallocationSessionResponse, error) {
	var amount decimal.NullDecimal
	if len(raw) > 0 {
		err := json.Unmarshal(raw, &amount)
		if err != nil {
			return ReallocationSessionResponse{}, httputil.ErrInvalidBody
		}
	}

	if amount.Valid && amount.Decimal.IsNegative() {
		return ReallocationSessionResponse{}, models.ErrAmountNegative
	}

	var response ReallocationSessionResponse
	if warning := s.EnterNewBudget(amount); warning != nil {
		n := warning.Notification()
		response.Notification = &n
	}

	return response, nil
}

// @Summary		Close reallocation session
// @Description	Discards a reallocation session without submitting it
// @Tags			Reallocation Sessions
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reallocation-sessions/{id} [delete]
func DeleteReallocationSession(c *gin.Context) {
	s, err := session(c)
	if err != nil {
		c.JSON(status(err), httpError{
			Error: err.Error(),
		})
		return
	}

	sessions.Close(s.ID)
	c.JSON(http.StatusNoContent, nil)
}

// @Summary		Submit reallocation
// @Description	Approves the reallocation of the session. The budget figures are looked up again.
// @Description
// @Description	If the new budget exceeds the master budget limit, the submission is rejected unless enforcing the limit is disabled.
// @Description	The monthly distribution is rescaled, the budget is replaced by an amended copy and the reallocation is stored.
// @Description	The session is closed afterwards.
// @Tags			Reallocation Sessions
// @Produce		json
// @Success		201	{object}	BudgetReallocationResponse
// @Failure		400	{object}	BudgetReallocationResponse
// @Failure		404	{object}	BudgetReallocationResponse
// @Failure		500	{object}	BudgetReallocationResponse
// @Param			id	path		URIID	true	"ignored, but needed: https://github.com/swaggo/swag/issues/1014"
// @Router			/v1/reallocation-sessions/{id}/submit [post]
func SubmitReallocationSession(c *gin.Context) {
	s, err := takeSession(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationResponse{
			Error: &e,
		})
		return
	}

	// A session that is not submitted stays open for corrections
	submitted := false
	defer func() {
		if !submitted {
			sessions.Put(s)
		}
	}()

	record := s.Record()
	if !record.Complete() {
		e := ErrIncompleteSelection.Error()
		c.JSON(http.StatusBadRequest, BudgetReallocationResponse{
			Error: &e,
		})
		return
	}

	if !record.NewBudget.Valid {
		e := models.ErrNewBudgetNotSet.Error()
		c.JSON(http.StatusBadRequest, BudgetReallocationResponse{
			Error: &e,
		})
		return
	}

	result, warning, err := models.Reallocate(models.DB.WithContext(c.Request.Context()), record.Key(), record.NewBudget.Decimal, enforceLimit)

	var notification *reallocation.Notification
	if warning != nil {
		n := warning.Notification()
		notification = &n
	}

	if err != nil {
		e := err.Error()
		c.JSON(status(err), BudgetReallocationResponse{
			Error:        &e,
			Notification: notification,
		})
		return
	}

	submitted = true

	apiResource := newBudgetReallocation(c, result)
	c.JSON(http.StatusCreated, BudgetReallocationResponse{
		Data:         &apiResource,
		Notification: notification,
	})
}
