package handler

import (
	"errors"
	"net/http"

	"github.com/luxoptic/optistore/internal/api/apiutil"
	"github.com/luxoptic/optistore/internal/infra/repository/redis_repo"
	"github.com/luxoptic/optistore/internal/pkg/errs"
	"github.com/luxoptic/optistore/internal/service"
)

// writeServiceError service層sentinel error統一轉HTTP status
// 未知錯誤一律500，不洩漏內部細節以外的行為
func writeServiceError(w http.ResponseWriter, err error) {
	code := errs.InternalErrorCode

	switch {
	case errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrOrderNotExist),
		errors.Is(err, service.ErrUserNotExist),
		errors.Is(err, service.ErrPrescriptionNotFound),
		errors.Is(err, service.ErrNoActivePrescription),
		errors.Is(err, service.ErrAppointmentNotExist),
		errors.Is(err, redis_repo.ErrCartItemNotFound),
		errors.Is(err, service.ErrCheckoutNotStarted):
		code = errs.NotFoundCode

	case errors.Is(err, service.ErrUserAlreadyExist):
		code = errs.ConflictCode

	case errors.Is(err, service.ErrPasswordIncorrect):
		code = errs.UnauthenticatedCode

	case errors.Is(err, service.ErrNotOrderOwner),
		errors.Is(err, service.ErrNotPrescriptionOwner),
		errors.Is(err, service.ErrNotProductOwner),
		errors.Is(err, service.ErrNotAppointmentOwner),
		errors.Is(err, service.ErrSelfRoleDowngrade):
		code = errs.UnauthorizedCode

	case errors.Is(err, service.ErrCartEmpty),
		errors.Is(err, service.ErrInvalidCartQty),
		errors.Is(err, service.ErrInvalidLensType),
		errors.Is(err, service.ErrLensNotApplicable),
		errors.Is(err, service.ErrCartItemNotInStock),
		errors.Is(err, service.ErrProductOutOfStock),
		errors.Is(err, service.ErrInvalidPrescription),
		errors.Is(err, service.ErrPrescriptionExpired),
		errors.Is(err, service.ErrInvalidStateTransition),
		errors.Is(err, service.ErrDeliveryScopedTransition),
		errors.Is(err, service.ErrInvalidRole),
		errors.Is(err, service.ErrInvalidDeliveryMethod),
		errors.Is(err, service.ErrBillingIncomplete),
		errors.Is(err, service.ErrLensOptionRequired),
		errors.Is(err, service.ErrPrescriptionNotVerified),
		errors.Is(err, service.ErrCheckoutWrongStep),
		errors.Is(err, service.ErrCheckoutPaymentDeclined),
		errors.Is(err, service.ErrAppointmentInPast),
		errors.Is(err, service.ErrInvalidAppointmentSta),
		errors.Is(err, redis_repo.ErrInvalidQuantity):
		code = errs.BadRequestCode

	case errors.Is(err, service.ErrCheckoutGatewayDown):
		apiutil.ErrorJSON(w, http.StatusServiceUnavailable, err, "service unavailable")
		return
	}

	apiutil.ErrorJSON(w, int(code), err, errs.ErrStrMap[code])
}

func badRequest(w http.ResponseWriter, err error) {
	apiutil.ErrorJSON(w, int(errs.BadRequestCode), err, errs.ErrStrMap[errs.BadRequestCode])
}

func unauthenticated(w http.ResponseWriter) {
	apiutil.ErrorJSON(w, int(errs.UnauthenticatedCode), errs.New(errs.UnauthenticatedCode, "unauthenticated"), errs.ErrStrMap[errs.UnauthenticatedCode])
}
