package platform

const osIdentifier = Android
