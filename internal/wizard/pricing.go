package wizard

import "github.com/petportal/booking-api/internal/model"

// Total sums the price of every (pet, service) pair in the assignment matrix.
// A service assigned to three pets is charged three times. Service ids with
// no match in the catalog are skipped: the services catalog can be refetched
// out from under a long-lived draft, and a stale id must not be fatal.
func Total(d *Draft, services []model.Service) int64 {
	if len(d.Assignments) == 0 {
		return 0
	}

	prices := make(map[string]int64, len(services))
	for _, svc := range services {
		prices[svc.ID.String()] = svc.Price
	}

	var total int64
	for _, assigned := range d.Assignments {
		for _, serviceID := range assigned {
			if price, ok := prices[serviceID.String()]; ok {
				total += price
			}
		}
	}
	return total
}
