package v1

// BasePath is the base path for all v1 API routes
const BasePath = "/api/v1/gallery"
