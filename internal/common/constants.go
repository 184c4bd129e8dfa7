package common

const (
	AppMain           = "foodie"
	AppCartService    = "cart-service"
	AppOrderService   = "order-service"
	AppProductService = "product-service"
	AppUserService    = "user-service"

	AudienceUser = "user"

	URLOrderService   = "http://order-service:8080/orders"
	URLProductService = "http://product-service:8080/products"
	URLUserService    = "http://user-service:8080/users"
)
