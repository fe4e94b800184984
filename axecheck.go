// Package axecheck runs axe-core accessibility scans against browser pages
// driven by an automation tool.
//
// The package injects an axe-core build into a page through a one-method
// Page capability, invokes the scan, and wraps the raw JSON response in a
// Results value that can be counted, snapshotted, rendered as a report, or
// saved to disk. Adapters for chromedp and Playwright live under driver/;
// an MCP server exposing scans to agent tooling lives under mcp/.
package axecheck

// Version is the axecheck release version.
const Version = "0.3.0"
