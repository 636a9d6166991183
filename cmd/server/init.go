package main

import (
	"context"

	"github.com/sirupsen/logrus"

	"github.com/IncharaS06/vital/config"
	"github.com/IncharaS06/vital/internal/database"
	"github.com/IncharaS06/vital/internal/global"
	"github.com/IncharaS06/vital/internal/utility"
)

// InitGlobal initializes the global state in dependency order.
func InitGlobal() {
	initColNames()
	initConfig()
	initValidator()
	initDatabase_MongoDB()
	initFirebase()
}

func initColNames() {
	global.MongoDB_ColNames.Issues = "issues"
	global.MongoDB_ColNames.Authorities = "authorities"
	global.MongoDB_ColNames.MailQueue = "mail_queue"

	logrus.Info("Initialized collection names")
}

// initValidator registers the custom validators (no_xss, exists).
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")

	db := global.MongoDB_Session.Database(global.ServerConfig.MongoDB_DBName)
	if err := database.CreateIndexes(context.TODO(), db); err != nil {
		logrus.Fatalf("Failed to create indexes: %v", err)
	}
	logrus.Info("Ensured collection indexes")
}

// initFirebase initializes the Firebase Admin SDK. Missing config is not
// fatal so local setups without Firebase can still run the workers.
func initFirebase() {
	cfg := global.ServerConfig
	if cfg.FirebaseProjectID == "" || cfg.FirebaseCredentialsPath == "" {
		logrus.Warn("Firebase config incomplete, skipping Firebase initialization")
		return
	}

	if err := utility.InitFirebase(cfg.FirebaseProjectID, cfg.FirebaseCredentialsPath); err != nil {
		logrus.Errorf("Failed to initialize Firebase: %v", err)
		return
	}

	logrus.Info("Firebase initialized successfully")
}
