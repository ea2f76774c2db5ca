package dto

import (
	"agent/internal/entities"
	"agent/internal/lifecycle"
)

func FromOffer(offer entities.Offer) Offer {
	return Offer{
		OrderID:            offer.OrderID,
		RestaurantName:     offer.RestaurantName,
		RestaurantLat:      offer.RestaurantLocation.Latitude,
		RestaurantLng:      offer.RestaurantLocation.Longitude,
		DeliveryDistanceKm: offer.DeliveryDistanceKm,
		EstimatedEarnings:  offer.EstimatedEarnings,
		PaymentMethod:      offer.PaymentMethod,
		CreatedAt:          offer.CreatedAt,
	}
}

func FromOrder(order entities.Order) Order {
	result := Order{
		ID:              order.ID,
		Status:          order.Status.String(),
		StatusMessage:   order.StatusMessage,
		RestaurantName:  order.Restaurant.Name,
		DeliveryAddress: order.DeliveryAddress.FullAddress,
		PaymentMethod:   order.PaymentMethod,
	}

	for _, item := range order.Items {
		result.Items = append(result.Items, OrderItem{
			Name:     item.Name,
			Price:    item.Price,
			Quantity: item.Quantity,
		})
	}

	if order.Rider != nil {
		result.Rider = &Rider{
			Name:  order.Rider.Name,
			Phone: order.Rider.Phone,
		}
	}
	if order.RiderLocation != nil {
		result.RiderLocation = &RiderLocation{
			Lat:       order.RiderLocation.Point.Latitude,
			Lng:       order.RiderLocation.Point.Longitude,
			Timestamp: order.RiderLocation.Timestamp,
		}
	}

	for _, step := range lifecycle.Timeline(order) {
		result.Timeline = append(result.Timeline, TimelineStep{
			Status:    step.Status.String(),
			Completed: step.Completed,
			At:        step.At,
		})
	}

	return result
}

func FromStats(stats entities.RiderStats) Stats {
	return Stats{
		TotalDeliveries: stats.TotalDeliveries,
		TotalEarnings:   stats.TotalEarnings,
		TodayEarnings:   stats.TodayEarnings,
		Rating:          stats.Rating,
		RatingCount:     stats.RatingCount,
		ActiveOrders:    stats.ActiveOrders,
	}
}
