package otel

import (
	"go.opentelemetry.io/otel"

	"github.com/foodie-app/foodie/internal/common"
)

var Tracer = otel.Tracer(common.AppOrderService)
