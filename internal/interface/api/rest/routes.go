package rest

const (
	// api
	RouteApiV1 = "/api/v1"

	// files
	RouteFiles      = RouteApiV1 + "/files"
	RouteFile       = RouteFiles + "/:file_id"
	RouteFileGrants = RouteFile + "/grants"
	RouteFileLinks  = RouteFile + "/links"
	RouteFileAudit  = RouteFile + "/audit"

	// sharing
	RouteGrant = RouteApiV1 + "/grants/:grant_id"
	RouteLinks = RouteApiV1 + "/links"
	RouteLink  = RouteLinks + "/:token"

	// audit
	RouteMyAudit = RouteApiV1 + "/audit/me"

	// ops
	RouteHealth  = RouteApiV1 + "/healthz"
	RouteMetrics = RouteApiV1 + "/metrics"
)
