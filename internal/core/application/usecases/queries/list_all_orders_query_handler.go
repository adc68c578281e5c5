package queries

import (
	"context"
	"log/slog"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/services"
	"storefront/internal/core/ports"
)

// ListAllOrdersQueryHandler lists every order, newest first, and attaches the
// owner's display profile. Only admins may run it.
//
// A failing user service degrades the list to orders without profiles rather
// than failing the request.
type ListAllOrdersQueryHandler struct {
	reader ports.OrderReader
	users  ports.UserDirectory
	access services.OrderAccessPolicy
	logger *slog.Logger
}

func NewListAllOrdersQueryHandler(
	reader ports.OrderReader,
	users ports.UserDirectory,
	logger *slog.Logger,
) ListAllOrdersQueryHandler {
	return ListAllOrdersQueryHandler{
		reader: reader,
		users:  users,
		access: services.NewOrderAccessPolicy(),
		logger: logger.With("component", "ListAllOrdersQueryHandler"),
	}
}

func (h ListAllOrdersQueryHandler) Handle(
	ctx context.Context,
	query ListAllOrdersQuery,
) ([]ListAllOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}
	if err := h.access.CanListAll(query.Actor()); err != nil {
		return nil, err
	}

	orders, err := h.reader.List(ctx, ports.OrderFilter{})
	if err != nil {
		return nil, err
	}

	owners := make([]kernel.UUID, 0, len(orders))
	seen := make(map[kernel.UUID]struct{}, len(orders))
	for _, o := range orders {
		if _, ok := seen[o.OwnerID()]; ok {
			continue
		}
		seen[o.OwnerID()] = struct{}{}
		owners = append(owners, o.OwnerID())
	}

	profiles := map[kernel.UUID]ports.UserProfile{}
	if len(owners) > 0 {
		found, lookupErr := h.users.Profiles(ctx, owners)
		if lookupErr != nil {
			h.logger.WarnContext(ctx, "owner profiles unavailable", "error", lookupErr, "owners", len(owners))
		} else {
			profiles = found
		}
	}

	response := make([]ListAllOrdersQueryResponse, 0, len(orders))
	for _, o := range orders {
		row := ListAllOrdersQueryResponse{Order: o}
		if profile, ok := profiles[o.OwnerID()]; ok {
			row.Owner = &profile
		}
		response = append(response, row)
	}

	return response, nil
}
