package workflow

import (
	"errors"
	"net/http"

	"go.temporal.io/sdk/temporal"
	"go.temporal.io/sdk/workflow"

	"github.com/ahrav/go-userflow/internal/domain"
	"github.com/ahrav/go-userflow/internal/users"
)

// DuplicateUserMessage is the fraud-prevention message returned with
// every 409 outcome, whether the duplicate was caught by the pre-check
// or by the store's uniqueness constraint.
const DuplicateUserMessage = "Duplicate user found, possible fraud"

// userActivities is a nil receiver used purely for activity name
// resolution in ExecuteActivity calls; the worker registers the real
// instance.
var userActivities *users.Activities

// CreateUserWorkflow orchestrates user creation: duplicate check by
// mobile number, then insert. Both duplicate paths, detected before
// acting and detected via the store's uniqueness constraint inside the
// race window, terminate in the same 409 outcome carrying the winning
// record's id.
func CreateUserWorkflow(
	ctx workflow.Context,
	req domain.CreateUserRequest,
) (*domain.CreateUserResult, error) {
	// Version gate enables safe evolution of the create sequence.
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "user-create.v", workflow.DefaultVersion, currentVersion)

	logger := workflow.GetLogger(ctx)

	if err := req.Input.Validate(); err != nil {
		logger.Info("Create request rejected by validation", "error", err)
		return &domain.CreateUserResult{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		}, nil
	}

	ctx = workflow.WithActivityOptions(ctx, activityOptions(req.Config))

	var dup domain.DuplicateCheck
	if err := workflow.ExecuteActivity(ctx, userActivities.CheckDuplicateByMobile, req.Input.Mobile).Get(ctx, &dup); err != nil {
		return nil, err
	}
	if dup.Found {
		logger.Info("Duplicate user detected before create",
			"mobile", req.Input.Mobile,
			"existing_user_id", dup.UserID)
		return &domain.CreateUserResult{
			Code:    http.StatusConflict,
			UserID:  dup.UserID,
			Message: DuplicateUserMessage,
		}, nil
	}

	var user domain.User
	err := workflow.ExecuteActivity(ctx, userActivities.CreateUser, req.Input).Get(ctx, &user)
	if err != nil {
		if !isDuplicateUserError(err) {
			return nil, err
		}
		// A concurrent create won the race between the duplicate check
		// and the insert. Re-run the check to fetch the winner's id so
		// the 409 carries the same payload as the pre-check path.
		logger.Info("Create lost uniqueness race, reporting duplicate",
			"mobile", req.Input.Mobile)
		var winner domain.DuplicateCheck
		if cerr := workflow.ExecuteActivity(ctx, userActivities.CheckDuplicateByMobile, req.Input.Mobile).Get(ctx, &winner); cerr != nil {
			return nil, cerr
		}
		return &domain.CreateUserResult{
			Code:    http.StatusConflict,
			UserID:  winner.UserID,
			Message: DuplicateUserMessage,
		}, nil
	}

	logger.Info("User created", "user_id", user.ID)
	return &domain.CreateUserResult{
		Code:   http.StatusCreated,
		UserID: user.ID,
		User:   &user,
	}, nil
}

// UpdateUserWorkflow applies a partial update to one user. Updating an
// id that matches no live row terminates with Updated=false; a
// uniqueness collision on a changed mobile or email is reclassified as
// 409 to match the create policy.
func UpdateUserWorkflow(
	ctx workflow.Context,
	req domain.UpdateUserRequest,
) (*domain.UpdateUserResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "user-update.v", workflow.DefaultVersion, currentVersion)

	if err := req.Input.Validate(); err != nil {
		return &domain.UpdateUserResult{
			Code:    http.StatusBadRequest,
			UserID:  req.UserID,
			Message: err.Error(),
		}, nil
	}

	ctx = workflow.WithActivityOptions(ctx, activityOptions(req.Config))

	var outcome domain.UpdateOutcome
	err := workflow.ExecuteActivity(ctx, userActivities.UpdateUser, req.UserID, req.Input).Get(ctx, &outcome)
	if err != nil {
		if isDuplicateUserError(err) {
			return &domain.UpdateUserResult{
				Code:    http.StatusConflict,
				UserID:  req.UserID,
				Message: DuplicateUserMessage,
			}, nil
		}
		return nil, err
	}

	return &domain.UpdateUserResult{
		Code:    http.StatusOK,
		UserID:  outcome.UserID,
		Updated: outcome.Updated,
	}, nil
}

// GetUserWorkflow fetches one user by id, terminating in 200 with the
// record or 404.
func GetUserWorkflow(
	ctx workflow.Context,
	req domain.GetUserRequest,
) (*domain.GetUserResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "user-get.v", workflow.DefaultVersion, currentVersion)

	ctx = workflow.WithActivityOptions(ctx, activityOptions(req.Config))

	var outcome domain.GetOutcome
	if err := workflow.ExecuteActivity(ctx, userActivities.GetUser, req.UserID).Get(ctx, &outcome); err != nil {
		return nil, err
	}
	if !outcome.Found {
		return &domain.GetUserResult{
			Code:    http.StatusNotFound,
			Message: "user not found",
		}, nil
	}

	return &domain.GetUserResult{
		Code: http.StatusOK,
		User: outcome.User,
	}, nil
}

// ListUsersWorkflow returns one page of users ordered by id ascending,
// applying the default page bounds when the request leaves them unset.
func ListUsersWorkflow(
	ctx workflow.Context,
	req domain.ListUsersRequest,
) (*domain.ListUsersResult, error) {
	const currentVersion = 1
	_ = workflow.GetVersion(ctx, "user-list.v", workflow.DefaultVersion, currentVersion)

	in := req.Input.Normalize()
	ctx = workflow.WithActivityOptions(ctx, activityOptions(req.Config))

	var page []domain.User
	if err := workflow.ExecuteActivity(ctx, userActivities.ListUsers, in).Get(ctx, &page); err != nil {
		return nil, err
	}
	if page == nil {
		page = []domain.User{}
	}

	return &domain.ListUsersResult{
		Code:   http.StatusOK,
		Users:  page,
		Limit:  in.Limit,
		Offset: in.Offset,
	}, nil
}

// activityOptions maps the request-carried config onto Temporal activity
// options. The retry policy governs infrastructure failures only;
// business outcomes are values and never reach it.
func activityOptions(cfg domain.ActivityConfig) workflow.ActivityOptions {
	cfg = cfg.Normalize()
	return workflow.ActivityOptions{
		StartToCloseTimeout: cfg.Timeout(),
		RetryPolicy: &temporal.RetryPolicy{
			InitialInterval:    cfg.RetryInitialInterval(),
			BackoffCoefficient: cfg.RetryBackoffCoefficient,
			MaximumInterval:    cfg.RetryMaxInterval(),
			MaximumAttempts:    cfg.RetryMaxAttempts,
		},
	}
}

// isDuplicateUserError reports whether the activity failure carries the
// DuplicateUser application error tag.
func isDuplicateUserError(err error) bool {
	var appErr *temporal.ApplicationError
	return errors.As(err, &appErr) && appErr.Type() == domain.ErrTypeDuplicateUser
}
