package api

// @title Citetool API
// @version v0.1.0
// @description API for the citation comment documentation tool.

// @contact.name API Support
// @contact.url http://example.com/support
// @contact.email support@example.com

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:8787
// @BasePath /api
// @schemes http
// @query.collection.format multi
