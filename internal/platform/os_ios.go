package platform

const osIdentifier = IOS
