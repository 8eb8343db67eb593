package cloudvision

import (
	"fmt"

	"cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/renato0307/productsearch/internal/domain"
)

func productToProto(p domain.Product) *visionpb.Product {
	return &visionpb.Product{
		Description:     p.Description,
		DisplayName:     p.DisplayName,
		Name:            p.Name,
		ProductCategory: p.ProductCategory,
		ProductLabels:   labelsToProto(p.Labels),
	}
}

func productFromProto(p *visionpb.Product) domain.Product {
	labels := make([]domain.KeyValue, 0, len(p.GetProductLabels()))
	for _, l := range p.GetProductLabels() {
		labels = append(labels, domain.KeyValue{Key: l.GetKey(), Value: l.GetValue()})
	}
	return domain.Product{
		Description:     p.GetDescription(),
		DisplayName:     p.GetDisplayName(),
		Labels:          labels,
		Name:            p.GetName(),
		ProductCategory: p.GetProductCategory(),
	}
}

func labelsToProto(labels []domain.KeyValue) []*visionpb.Product_KeyValue {
	if len(labels) == 0 {
		return nil
	}
	result := make([]*visionpb.Product_KeyValue, len(labels))
	for i, l := range labels {
		result[i] = &visionpb.Product_KeyValue{Key: l.Key, Value: l.Value}
	}
	return result
}

func productSetFromProto(ps *visionpb.ProductSet) domain.ProductSet {
	return domain.ProductSet{
		DisplayName: ps.GetDisplayName(),
		IndexTime:   ps.GetIndexTime().AsTime(),
		Name:        ps.GetName(),
	}
}

// mapError translates gRPC status codes into domain errors so callers can use
// errors.Is regardless of backend. The service message is kept.
func mapError(err error, op string) error {
	if err == nil {
		return nil
	}

	st, ok := status.FromError(err)
	if !ok {
		return fmt.Errorf("failed to %s: %w", op, err)
	}

	switch st.Code() {
	case codes.NotFound:
		return fmt.Errorf("%w: %s", domain.ErrNotFound, st.Message())
	case codes.AlreadyExists:
		return fmt.Errorf("%w: %s", domain.ErrAlreadyExists, st.Message())
	case codes.InvalidArgument:
		return fmt.Errorf("%w: %s", domain.ErrInvalidArgument, st.Message())
	default:
		return fmt.Errorf("failed to %s: %w", op, err)
	}
}
