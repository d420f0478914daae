// AWS Backup Analyzer - inventory backup activity in a region and compile
// it into a JSON report plus a multi-sheet analysis workbook.
package main

func main() {
	Execute()
}
