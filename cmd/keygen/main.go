// cmd/keygen/main.go
//
// keygen writes a solana-keygen compatible keypair file (JSON array of 64 bytes)
// and prints the address and base58 secret.
//
//	go run ./cmd/keygen -out authority.json
package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/blocto/solana-go-sdk/types"
	"github.com/mr-tron/base58"

	solanainfra "nftminter/internal/infra/solana"
)

func main() {
	out := flag.String("out", "", "keypair file to write (stdout if empty)")
	force := flag.Bool("force", false, "overwrite an existing file")
	flag.Parse()

	acc := types.NewAccount()
	data, err := solanainfra.KeypairJSON(acc)
	if err != nil {
		log.Fatalf("[keygen] encode: %v", err)
	}

	if *out == "" {
		fmt.Println(string(data))
	} else {
		flags := os.O_WRONLY | os.O_CREATE | os.O_EXCL
		if *force {
			flags = os.O_WRONLY | os.O_CREATE | os.O_TRUNC
		}
		f, err := os.OpenFile(*out, flags, 0o600)
		if err != nil {
			log.Fatalf("[keygen] open %s: %v", *out, err)
		}
		if _, err := f.Write(data); err != nil {
			_ = f.Close()
			log.Fatalf("[keygen] write %s: %v", *out, err)
		}
		if err := f.Close(); err != nil {
			log.Fatalf("[keygen] close %s: %v", *out, err)
		}
		fmt.Fprintf(os.Stderr, "wrote %s\n", *out)
	}

	fmt.Fprintf(os.Stderr, "address: %s\n", acc.PublicKey.ToBase58())
	fmt.Fprintf(os.Stderr, "secret (base58): %s\n", base58.Encode(acc.PrivateKey))
}
