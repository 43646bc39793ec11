// Command turnoversim runs receptor turnover scenarios on the reference host.
package main

func main() {
	Execute()
}
