package main

import (
	"fmt"
	"log"

	iidc "github.com/y3nr1ng/go-iidc"
)

func main() {
	fmt.Println("Listing IIDC cameras...")

	ctx, err := iidc.NewContext()
	if err != nil {
		log.Fatalf("Failed to initialize: %v", err)
	}
	defer ctx.Close()

	guids, err := ctx.ListDevices()
	if err != nil {
		log.Fatalf("Failed to list devices: %v", err)
	}

	if len(guids) == 0 {
		fmt.Println("No IIDC cameras found")
		fmt.Println("\nNote: Make sure the FireWire modules are loaded and your user")
		fmt.Println("can access /dev/fw*. On most distributions that means membership")
		fmt.Println("in the 'video' group.")
		return
	}

	fmt.Printf("Found %d camera(s):\n\n", len(guids))

	for i, guid := range guids {
		fmt.Printf("Camera %d:\n", i+1)
		fmt.Printf("  GUID: %s\n", guid)

		cam, err := ctx.OpenCamera(guid)
		if err != nil {
			fmt.Printf("  (Could not open: %v)\n", err)
			continue
		}

		fmt.Printf("  Vendor: %s\n", cam.Vendor())
		fmt.Printf("  Model: %s\n", cam.Model())

		modes, err := cam.SupportedModes()
		if err == nil {
			fmt.Printf("  Video modes: %d\n", len(modes))
			for _, mode := range modes {
				if mode.IsFormat7() {
					fmt.Printf("    %s (scalable)\n", mode)
					continue
				}
				rates, err := cam.SupportedRates(mode)
				if err != nil {
					fmt.Printf("    %s\n", mode)
					continue
				}
				fmt.Printf("    %s: ", mode)
				for j, r := range rates {
					if j > 0 {
						fmt.Print(", ")
					}
					fmt.Print(r)
				}
				fmt.Println()
			}
		}

		cam.Close()
		fmt.Println()
	}
}
