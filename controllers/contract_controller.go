package controllers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"realty/dto"
	"realty/errors"
	"realty/response"
	"realty/services"
	"realty/validator"
)

// ContractController serves the contract views: list with sign-date
// filter, creation (which approves the underlying reservation) and the
// detail/print view. Admin only.
type ContractController struct {
	contracts *services.ContractService
}

func NewContractController(contracts *services.ContractService) *ContractController {
	return &ContractController{
		contracts: contracts,
	}
}

func (ctl *ContractController) GetContracts(c *gin.Context) {
	signDate := c.Query("signDate")
	if signDate != "" {
		if _, err := time.Parse("2006-01-02", signDate); err != nil {
			response.BadRequest(c, "signDate must be YYYY-MM-DD")
			return
		}
	}

	if err := ctl.contracts.FetchAll(c.Request.Context(), signDate); err != nil {
		response.ServerError(c)
		return
	}

	response.Success(c, ctl.contracts.Contracts())
}

func (ctl *ContractController) CreateContract(c *gin.Context) {
	var req dto.ContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid contract payload")
		return
	}
	if err := validator.ValidateContract(&req); err != nil {
		response.ValidationError(c, err.Error())
		return
	}

	created, err := ctl.contracts.Create(c.Request.Context(), c.GetString("token"), c.GetString("userID"), req)
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil {
			switch appErr.Code {
			case errors.ErrCodeNotHeld:
				response.BadRequest(c, appErr.Message)
				return
			case errors.ErrCodeBackendNotFound:
				response.NotFound(c)
				return
			}
		}
		response.ServerError(c)
		return
	}

	response.Success(c, created)
}

func (ctl *ContractController) GetContractDetail(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		response.BadRequest(c, "invalid contract id")
		return
	}

	contract, err := ctl.contracts.GetByID(c.Request.Context(), uint(id))
	if err != nil {
		if appErr := errors.GetAppError(err); appErr != nil && appErr.Code == errors.ErrCodeBackendNotFound {
			response.NotFound(c)
			return
		}
		response.ServerError(c)
		return
	}

	response.Success(c, contract)
}
