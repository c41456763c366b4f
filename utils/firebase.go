// utils/firebase.go
package utils

import (
	"context"
	"log"

	"soupbarber/config"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go/v4"
	"firebase.google.com/go/v4/messaging"
	"google.golang.org/api/option"
)

var (
	FirebaseApp     *firebase.App
	FirestoreClient *firestore.Client
	FCMClient       *messaging.Client
)

// FirebaseInit initializes the Firebase App. Firestore and Messaging clients
// are created lazily by their accessors.
func FirebaseInit() {
	ctx := context.Background()
	opt := option.WithCredentialsFile(config.AppConfig.FirebaseCredentialsFile)

	var fbConfig *firebase.Config
	if config.AppConfig.FirebaseProjectID != "" {
		fbConfig = &firebase.Config{ProjectID: config.AppConfig.FirebaseProjectID}
	}

	app, err := firebase.NewApp(ctx, fbConfig, opt)
	if err != nil {
		log.Fatalf("firebase: error initializing app: %v", err)
	}
	FirebaseApp = app
}

// GetFirestoreClient returns the shared Firestore client.
func GetFirestoreClient() *firestore.Client {
	if FirestoreClient != nil {
		return FirestoreClient
	}
	if FirebaseApp == nil {
		FirebaseInit()
	}
	client, err := FirebaseApp.Firestore(context.Background())
	if err != nil {
		log.Fatalf("firebase: error getting Firestore client: %v", err)
	}
	FirestoreClient = client
	return FirestoreClient
}

// GetFCMClient returns the shared Messaging client.
func GetFCMClient() *messaging.Client {
	if FCMClient != nil {
		return FCMClient
	}
	if FirebaseApp == nil {
		FirebaseInit()
	}
	client, err := FirebaseApp.Messaging(context.Background())
	if err != nil {
		log.Fatalf("firebase: error getting Messaging client: %v", err)
	}
	FCMClient = client
	return FCMClient
}
