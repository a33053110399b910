// Package logger expone un logger Zap singleton con scoping por contexto.
//
// Init se llama una sola vez en main con la configuración de la app:
//
//	logger.Init(logger.Config{Env: cfg.App.Env, Level: cfg.Log.Level, ServiceName: "bizflow"})
//	defer logger.Sync()
//
// Los middlewares HTTP inyectan un logger "scoped" (request_id, method, path,
// user_id) en el contexto. Services y controllers lo recuperan con From:
//
//	log := logger.From(ctx).With(logger.Layer("service"), logger.Op("Create"))
//	log.Info("customer created", logger.CustomerID(c.ID))
//
// Sin contexto se usa el singleton: logger.L().Info("server started").
package logger
