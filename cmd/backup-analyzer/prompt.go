package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"
)

// promptRegion asks the user to pick a region, by list index or by name.
func promptRegion(regions []string) (string, error) {
	if len(regions) == 0 {
		return "", fmt.Errorf("no available regions returned; check your credentials")
	}

	fmt.Println("\nAvailable AWS regions:")
	for i, region := range regions {
		fmt.Printf("%d. %s\n", i+1, region)
	}

	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nChoose a region number or type the region name: ")
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				return "", fmt.Errorf("read region choice: %w", err)
			}
			return "", fmt.Errorf("no region selected")
		}
		choice := strings.TrimSpace(scanner.Text())

		if idx, err := strconv.Atoi(choice); err == nil {
			if idx >= 1 && idx <= len(regions) {
				return regions[idx-1], nil
			}
		} else {
			for _, region := range regions {
				if choice == region {
					return region, nil
				}
			}
		}

		fmt.Println("Invalid choice. Please select a valid region.")
	}
}
