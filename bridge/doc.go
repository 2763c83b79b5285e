// Package bridge implements the client side of the editor bridge protocol.
//
// The package is intentionally split by concern:
//   - payload: classification of raw upstream bodies into typed shapes
//   - normalize: conversion of any shape into canonical content blocks
//   - client: the single-request HTTP gateway to the bridge endpoint
//   - health: one-shot probing and scheduled health evaluation
//
// The editor bridge evolved its response format over time. Rather than
// teaching every tool which format a given editor version speaks, all
// version variance is absorbed here: a handler hands the client a request
// body and always receives an ordered sequence of text/image blocks back,
// whether the upstream call succeeded, failed, or returned a legacy body.
package bridge
