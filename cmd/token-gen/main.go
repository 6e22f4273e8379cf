// token-gen prints a signed bearer token for local development against the
// POS front-end. The upstream API normally issues tokens; this tool only
// exists so the service can be exercised without a login round-trip.
package main

import (
	"flag"
	"fmt"
	"log"

	"github.com/joho/godotenv"

	"bitbucket.org/mmdatafocus/pos_frontend/utils"
)

func main() {
	userID := flag.Int("user", 1, "user id to embed in the token")
	username := flag.String("username", "dev@local", "username to embed in the token")
	role := flag.String("role", "staff", "role to embed in the token")
	flag.Parse()

	godotenv.Load()

	token, err := utils.JwtGenerate(*userID, *username, *role)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	fmt.Println(token)
}
