// Package handler provides type-safe HTTP request handling.
//
// Handlers are generic functions that receive a bound request value and
// return a Response. Wrap turns them into http.HandlerFunc values that can be
// mounted on any router:
//
//	type GenerateRequest struct {
//		Type string         `json:"type"`
//		Data map[string]any `json:"data"`
//	}
//
//	func generate(ctx handler.Context, req GenerateRequest) handler.Response {
//		img, err := svc.Generate(ctx, req)
//		if err != nil {
//			return handler.JSONError(err)
//		}
//		return handler.Blob(img.Body, img.ContentType, handler.WithInline(img.Filename))
//	}
//
//	r.Post("/api/qr", handler.Wrap(generate,
//		handler.WithBinders[handler.Context, GenerateRequest](binder.JSON()),
//	))
//
// # Response Types
//
//	handler.JSON(data)                       // 200 OK with {"data": ...}
//	handler.JSON(data, WithJSONStatus(201))  // Custom status
//	handler.JSONError(err)                   // {"error": {...}} with status from err
//	handler.Blob(body, contentType)          // Raw bytes (images, files)
//	handler.Templ(component)                 // Server-rendered HTML
//
// # Errors
//
// HTTPError carries a status code, a machine readable key and an optional
// message. ValidationError collects per-field messages and is rendered with
// status 422 and a details map. Errors returned by binders or Render are
// passed to the ErrorHandler; NewErrorHandler classifies them with
// ClassifyError, logs them and writes a JSON error envelope.
package handler
