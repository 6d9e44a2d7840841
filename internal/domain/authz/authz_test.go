package authz

import "testing"

func TestAllowed_StaffOnlyOperations(t *testing.T) {
	staffOnly := []Operation{OpUpdateLoanStatus, OpEditLoan, OpRecordRepayment, OpUpdateSavings}
	for _, op := range staffOnly {
		if !Allowed(RoleAdmin, op) || !Allowed(RoleSubadmin, op) {
			t.Fatalf("staff should be allowed %s", op)
		}
		if Allowed(RoleCustomer, op) {
			t.Fatalf("customer must not be allowed %s", op)
		}
	}
}

func TestAllowed_AnyValidRole(t *testing.T) {
	for _, op := range []Operation{OpApplyLoan, OpRecordSavings} {
		for _, r := range []Role{RoleAdmin, RoleSubadmin, RoleCustomer} {
			if !Allowed(r, op) {
				t.Fatalf("%s should be allowed %s", r, op)
			}
		}
		if Allowed(Role("auditor"), op) {
			t.Fatalf("unknown role must not be allowed %s", op)
		}
	}
}

func TestAllowed_UnknownOperation(t *testing.T) {
	if Allowed(RoleAdmin, Operation("loan.delete")) {
		t.Fatal("unknown operation must be denied")
	}
}
