package get_bookings

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/m04kA/consultation-booking/internal/service/bookings/models"
)

// ToServiceRequest формирует запрос к сервису из query параметров
func ToServiceRequest(query url.Values) (*models.ListBookingsRequest, error) {
	req := &models.ListBookingsRequest{
		Search:    query.Get("search"),
		SortBy:    query.Get("sort"),
		Direction: query.Get("direction"),
		Page:      1,
	}

	if pageStr := query.Get("page"); pageStr != "" {
		page, err := strconv.Atoi(pageStr)
		if err != nil || page < 1 {
			return nil, fmt.Errorf("invalid page value %q", pageStr)
		}
		req.Page = page
	}

	return req, nil
}
