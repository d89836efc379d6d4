// Command devtoken mints a signed bearer token for local testing against the API.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/omarbeegsi189-star/online-food-order-system/configs"
	"github.com/omarbeegsi189-star/online-food-order-system/entity"
	"github.com/omarbeegsi189-star/online-food-order-system/utils"
)

func main() {
	role := flag.String("role", string(entity.RoleCustomer), "customer | admin | super-admin | delivery")
	id := flag.Uint("id", 0, "user id carried in the token")
	flag.Parse()

	switch r := entity.Role(*role); r {
	case entity.RoleCustomer, entity.RoleAdmin, entity.RoleSuperAdmin, entity.RoleDelivery:
	default:
		log.Fatalf("unknown role %q", r)
	}
	if *id == 0 {
		log.Fatal("-id is required")
	}

	cfg, err := configs.LoadConfig()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	tok, err := utils.GenerateToken(*id, entity.Role(*role), cfg.JWTSecret, cfg.JWTTTL)
	if err != nil {
		log.Fatalf("sign: %v", err)
	}
	fmt.Fprintln(os.Stdout, tok)
}
