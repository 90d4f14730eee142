package usecase

import (
	"context"
	"fmt"

	"loyalty-rules/internal/rules/domain/model"
	"loyalty-rules/internal/rules/domain/repository"
)

// usersPrivilegedFields may never appear in a self-service create; they are
// granted through separate update rules by shop owners and admins.
var usersPrivilegedFields = []string{
	model.FieldShopID,
	model.FieldShopName,
	model.FieldIsEmployee,
	model.FieldIsShopOwner,
	model.FieldIsAdmin,
}

// UsersPolicy implements the authorization contract for the users collection.
type UsersPolicy struct{}

// NewUsersPolicy creates a new UsersPolicy
func NewUsersPolicy() *UsersPolicy {
	return &UsersPolicy{}
}

func (p *UsersPolicy) Collection() string {
	return model.CollectionUsers
}

func (p *UsersPolicy) Evaluate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	switch req.Operation {
	case repository.OperationGet:
		return p.evaluateGet(req, roles)
	case repository.OperationCreate:
		return p.evaluateCreate(ctx, req, roles, reader)
	case repository.OperationUpdate:
		return p.evaluateUpdate(ctx, req, roles, reader)
	case repository.OperationDelete:
		return p.evaluateDelete(req, roles)
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows this operation on users")
	}
}

// evaluateGet allows a user to read their own document, and employees and
// admins to read anyone's.
func (p *UsersPolicy) evaluateGet(req *repository.AccessRequest, roles model.Roles) repository.RuleResult {
	if roles.UID == req.DocumentID || roles.IsEmployee || roles.IsAdmin {
		return repository.Allow()
	}
	return repository.Deny(repository.CauseRoleDenied, "user documents are readable by their owner, employees and admins")
}

// evaluateCreate permits only the lazy first self-write: the owner may create
// their own document, privileged fields must be absent, and value may only be
// initialized at zero.
func (p *UsersPolicy) evaluateCreate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	if roles.UID != req.DocumentID {
		return repository.Deny(repository.CauseRoleDenied, "only the document owner may create a user document")
	}
	prior, err := priorDocument(ctx, req, reader)
	if err != nil {
		return repository.Deny(repository.CauseRoleDenied, "user lookup failed")
	}
	if prior.Exists() {
		return repository.Deny(repository.CauseInvariantViolation, "user document already exists")
	}

	for _, field := range usersPrivilegedFields {
		if _, present := req.Proposed[field]; present {
			return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("field %s may not be set on create", field))
		}
	}

	if v, present := req.Proposed[model.FieldValue]; present {
		if !model.IsInteger(v) {
			return repository.Deny(repository.CauseTypeMismatch, "value must be an integer")
		}
		if n, _ := model.AsInt(v); n != 0 {
			return repository.Deny(repository.CauseInvariantViolation, "value may only be initialized at 0")
		}
	}
	for _, field := range []string{model.FieldBirth, model.FieldJoined} {
		if v, present := req.Proposed[field]; present && !model.IsInteger(v) {
			return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("%s must be an integer", field))
		}
	}
	if v, present := req.Proposed[model.FieldName]; present {
		if result := checkSafeString(model.FieldName, v); !result.Decision.Allowed() {
			return result
		}
	}

	return repository.Allow()
}

// evaluateUpdate applies the per-field rules: every field the write touches
// must independently satisfy its clause or the whole write is denied.
func (p *UsersPolicy) evaluateUpdate(ctx context.Context, req *repository.AccessRequest, roles model.Roles, reader repository.DocumentReader) repository.RuleResult {
	isOwner := roles.UID == req.DocumentID

	prior, err := priorDocument(ctx, req, reader)
	if err != nil {
		return repository.Deny(repository.CauseRoleDenied, "user lookup failed")
	}

	changes := model.Diff(prior, req.Proposed)
	if len(changes) == 0 {
		// Empty merge payloads touch nothing; owners and admins may no-op.
		if isOwner || roles.IsAdmin {
			return repository.Allow()
		}
		return repository.Deny(repository.CauseRoleDenied, "no rule allows an empty write by this principal")
	}

	for _, change := range changes {
		var result repository.RuleResult
		switch change.Field {
		case model.FieldBirth, model.FieldJoined:
			result = p.checkSetOnceInteger(change, roles, isOwner)
		case model.FieldName:
			result = p.checkSetOnceName(change, roles, isOwner)
		case model.FieldValue:
			result = p.checkValue(change, roles, isOwner)
		case model.FieldShopID:
			result = p.checkShopAssociation(change, roles, roles.ShopID)
		case model.FieldShopName:
			result = p.checkShopAssociation(change, roles, roles.ShopName)
		case model.FieldIsEmployee:
			result = p.checkIsEmployee(change, roles)
		case model.FieldIsShopOwner, model.FieldIsAdmin:
			result = p.checkAdminOnlyBool(change, roles)
		default:
			result = repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("field %s is not part of the user schema", change.Field))
		}
		if !result.Decision.Allowed() {
			return result
		}
	}

	return repository.Allow()
}

// checkSetOnceInteger covers birth and joined: the owner may set them once,
// admins may overwrite, and the type is always enforced.
func (p *UsersPolicy) checkSetOnceInteger(change model.FieldChange, roles model.Roles, isOwner bool) repository.RuleResult {
	if !model.IsInteger(change.Proposed) {
		return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("%s must be an integer", change.Field))
	}
	if roles.IsAdmin {
		return repository.Allow()
	}
	if !isOwner {
		return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("only the owner may set %s", change.Field))
	}
	if change.Prior != nil {
		return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("%s is immutable once set", change.Field))
	}
	return repository.Allow()
}

// checkSetOnceName is the string twin of checkSetOnceInteger.
func (p *UsersPolicy) checkSetOnceName(change model.FieldChange, roles model.Roles, isOwner bool) repository.RuleResult {
	if result := checkSafeString(change.Field, change.Proposed); !result.Decision.Allowed() {
		return result
	}
	if roles.IsAdmin {
		return repository.Allow()
	}
	if !isOwner {
		return repository.Deny(repository.CauseRoleDenied, "only the owner may set name")
	}
	if change.Prior != nil {
		return repository.Deny(repository.CauseInvariantViolation, "name is immutable once set")
	}
	return repository.Allow()
}

// checkValue enforces the three-tier value rule: owners initialize at zero
// once, employees may set any non-negative integer, admins any integer.
func (p *UsersPolicy) checkValue(change model.FieldChange, roles model.Roles, isOwner bool) repository.RuleResult {
	if !model.IsInteger(change.Proposed) {
		return repository.Deny(repository.CauseTypeMismatch, "value must be an integer")
	}
	n, _ := model.AsInt(change.Proposed)

	switch {
	case roles.IsAdmin:
		return repository.Allow()
	case roles.IsEmployee:
		if n < 0 {
			return repository.Deny(repository.CauseInvariantViolation, "employees may not set a negative value")
		}
		return repository.Allow()
	case isOwner:
		if change.Prior != nil {
			return repository.Deny(repository.CauseInvariantViolation, "value is immutable once set by its owner")
		}
		if n != 0 {
			return repository.Deny(repository.CauseInvariantViolation, "owners may only initialize value at 0")
		}
		return repository.Allow()
	default:
		return repository.Deny(repository.CauseRoleDenied, "no rule allows this principal to set value")
	}
}

// checkShopAssociation covers shopId and shopName: shop owners may only
// propagate their own association, admins may set any safe string.
func (p *UsersPolicy) checkShopAssociation(change model.FieldChange, roles model.Roles, own string) repository.RuleResult {
	if result := checkSafeString(change.Field, change.Proposed); !result.Decision.Allowed() {
		return result
	}
	if roles.IsAdmin {
		return repository.Allow()
	}
	if !roles.IsShopOwner {
		return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("only shop owners and admins may set %s", change.Field))
	}
	if change.Proposed != own {
		return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("shop owners may only set %s to their own shop's", change.Field))
	}
	return repository.Allow()
}

// checkIsEmployee lets a shop owner propagate the employee flag they hold on
// their own profile; admins may set any boolean.
func (p *UsersPolicy) checkIsEmployee(change model.FieldChange, roles model.Roles) repository.RuleResult {
	if !model.IsBool(change.Proposed) {
		return repository.Deny(repository.CauseTypeMismatch, "isEmployee must be a boolean")
	}
	if roles.IsAdmin {
		return repository.Allow()
	}
	if !roles.IsShopOwner {
		return repository.Deny(repository.CauseRoleDenied, "only shop owners and admins may set isEmployee")
	}
	if change.Proposed != roles.IsEmployee {
		return repository.Deny(repository.CauseInvariantViolation, "shop owners may only propagate their own isEmployee flag")
	}
	return repository.Allow()
}

// checkAdminOnlyBool covers isShopOwner and isAdmin.
func (p *UsersPolicy) checkAdminOnlyBool(change model.FieldChange, roles model.Roles) repository.RuleResult {
	if !model.IsBool(change.Proposed) {
		return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("%s must be a boolean", change.Field))
	}
	if !roles.IsAdmin {
		return repository.Deny(repository.CauseRoleDenied, fmt.Sprintf("only admins may set %s", change.Field))
	}
	return repository.Allow()
}

// evaluateDelete allows the owner and admins to delete a user document.
func (p *UsersPolicy) evaluateDelete(req *repository.AccessRequest, roles model.Roles) repository.RuleResult {
	if roles.UID == req.DocumentID || roles.IsAdmin {
		return repository.Allow()
	}
	return repository.Deny(repository.CauseRoleDenied, "only the owner or an admin may delete a user document")
}

// checkSafeString is the shared string-field gate: the value must be a string
// and must pass the allow-list safe-string check.
func checkSafeString(field string, v interface{}) repository.RuleResult {
	if !model.IsString(v) {
		return repository.Deny(repository.CauseTypeMismatch, fmt.Sprintf("%s must be a string", field))
	}
	if !model.IsSafeString(v) {
		return repository.Deny(repository.CauseInvariantViolation, fmt.Sprintf("%s contains unsafe characters", field))
	}
	return repository.Allow()
}
