package log

const (
	KeyAddressID     = "addressId"
	KeyAppName       = "app"
	KeyCacheKey      = "cacheKey"
	KeyCart          = "cart"
	KeyCartLineID    = "cartLineId"
	KeyCartLines     = "cartLines"
	KeyConfig        = "config"
	KeyDbURL         = "dbURL"
	KeyEmail         = "email"
	KeyLineQuantity  = "lineQuantity"
	KeyOrderID       = "orderId"
	KeyPathValues    = "pathValues"
	KeyProcess       = "process"
	KeyProductID     = "productId"
	KeyRequestBody   = "requestBody"
	KeyRequestHeader = "requestHeader"
	KeyRequestHost   = "host"
	KeyRequestID     = "requestId"
	KeyRequestIp     = "requesterIP"
	KeyRequestMethod = "requestMethod"
	KeyRequestURI    = "requestURI"
	KeyRequestURL    = "requestURL"
	KeySellerID      = "sellerId"
	KeySpanID        = "spanId"
	KeySubtotal      = "subtotal"
	KeyTag           = "tag"
	KeyToken         = "token"
	KeyTotal         = "total"
	KeyTraceID       = "traceId"
	KeyUserID        = "userId"
)
