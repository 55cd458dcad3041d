package leave

import (
	"github.com/peopleops/hrms-backend-go/internal/domain/leave"
)

// annualQuota is the per-type allotment of days for one calendar year. UNPAID
// has no quota and is excluded from balance accounting.
var annualQuota = map[leave.Type]float64{
	leave.TypeEarned:       21,
	leave.TypeSick:         12,
	leave.TypeCasual:       7,
	leave.TypeMaternity:    182,
	leave.TypePaternity:    15,
	leave.TypeBereavement:  5,
	leave.TypeCompensatory: 10,
}
