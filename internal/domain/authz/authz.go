// Package authz centralizes the role checks the original system scattered
// across handlers: every mutating operation consults one policy function.
package authz

type Role string

const (
	RoleAdmin    Role = "admin"
	RoleSubadmin Role = "subadmin"
	RoleCustomer Role = "customer"
)

func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleSubadmin || r == RoleCustomer
}

func (r Role) Staff() bool { return r == RoleAdmin || r == RoleSubadmin }

type Operation string

const (
	OpApplyLoan        Operation = "loan.apply"
	OpUpdateLoanStatus Operation = "loan.update_status"
	OpEditLoan         Operation = "loan.edit"
	OpRecordRepayment  Operation = "repayment.record"
	OpRecordSavings    Operation = "savings.record"
	OpUpdateSavings    Operation = "savings.update"
)

// Allowed is the single authorization policy for mutating operations.
func Allowed(role Role, op Operation) bool {
	switch op {
	case OpApplyLoan, OpRecordSavings:
		return role.Valid()
	case OpUpdateLoanStatus, OpEditLoan, OpRecordRepayment, OpUpdateSavings:
		return role.Staff()
	}
	return false
}
