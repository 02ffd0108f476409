package agentbay

// Version is the SDK release version reported in CreateMcpSession's
// sdk_stats payload.
const Version = "0.1.0"

const sdkLanguage = "golang"
