package global

import (
	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/IncharaS06/vital/config"
	"github.com/IncharaS06/vital/internal/registry"
)

// MongoDB_CollectionName holds the names of the MongoDB collections.
type MongoDB_CollectionName struct {
	Issues      string // Civic issue tickets
	Authorities string // Authority directory (vi/pdo/tdo/ddo accounts)
	MailQueue   string // Notification outbox
}

// Global variables
var MongoDB_Session *mongo.Client                                      // MongoDB client session
var ServerConfig *config.Configuration                                 // Server configuration
var MongoDB_ColNames MongoDB_CollectionName = *new(MongoDB_CollectionName) // Collection names

// Validate is the shared request validator, configured by InitValidator.
var Validate *validator.Validate

// Registries
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registered collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registered databases
