package sdk

// Version is the published SDK version.
// 0.3.0: Add retry support to Client.send for idempotent requests.
// 0.2.0: Breaking - Files.UploadTML takes an UploadRequest; multipart file
// parts accept any FileSource instead of a path string.
const Version = "0.3.0"
